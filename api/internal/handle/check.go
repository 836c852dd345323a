package handle

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"misinfo-checker/api/internal/misinfo"
)

const maxUploadBytes = 64 << 20

type checkBody struct {
	Content string `json:"content"`
	URL     string `json:"url"`
	Link    string `json:"link"`
}

type checkResponse struct {
	Success   bool              `json:"success"`
	Verdict   string            `json:"verdict"`
	Locations []misinfo.Finding `json:"locations"`
}

// outboundVerdict renders the canonical aggregate verdict the way clients
// of the original service expect it ("ACCURATE!"). This spelling exists
// only at the transport boundary.
func outboundVerdict(v string) string {
	if v == misinfo.OverallAccurate {
		return "ACCURATE!"
	}
	return v
}

// Check handles POST /api/misinfo/check with either a JSON body or a
// multipart form carrying an uploaded file.
func (h *Handle) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "POST only"})
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	res, err := h.pipeline.Check(r.Context(), req)
	if err != nil {
		if errors.Is(err, misinfo.ErrUnclassified) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		// Unexpected failures never leak internals to the caller.
		h.log.Error().Err(err).Msg("check failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "server error"})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Success:   true,
		Verdict:   outboundVerdict(res.OverallVerdict),
		Locations: res.Findings,
	})
}

func (h *Handle) parseRequest(r *http.Request) (misinfo.Request, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return h.parseMultipart(r)
	}

	var body checkBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return misinfo.Request{}, errors.New("bad json body")
	}
	return misinfo.Request{
		Content: strings.TrimSpace(body.Content),
		URL:     firstNonEmpty(body.URL, body.Link),
	}, nil
}

func (h *Handle) parseMultipart(r *http.Request) (misinfo.Request, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return misinfo.Request{}, errors.New("bad multipart body")
	}
	req := misinfo.Request{
		Content: strings.TrimSpace(r.FormValue("content")),
		URL:     firstNonEmpty(r.FormValue("url"), r.FormValue("link")),
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil
		}
		return misinfo.Request{}, errors.New("bad file upload")
	}
	defer file.Close()

	path, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Msg("saving upload failed")
		return misinfo.Request{}, errors.New("could not store uploaded file")
	}
	req.File = &misinfo.UploadedFile{
		MimeType:     header.Header.Get("Content-Type"),
		StoragePath:  path,
		OriginalName: header.Filename,
	}
	return req, nil
}

func (h *Handle) saveUpload(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes)); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
