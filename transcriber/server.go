package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultServerURL = "http://127.0.0.1:8080/v1/audio/transcriptions"

// Server posts WAV audio to a whisper server running on localhost (any
// OpenAI-style /v1/audio/transcriptions endpoint, e.g. whisper.cpp's
// server). The model lives in the server process, so there is no in-process
// load cost and WarmUp has nothing to do.
type Server struct {
	url    string
	lang   string
	client *http.Client
}

func newServer(url, lang string) *Server {
	if url == "" {
		url = defaultServerURL
	}
	return &Server{
		url:    url,
		lang:   lang,
		client: &http.Client{},
	}
}

func (s *Server) Name() string { return "server" }

func (s *Server) WarmUp() error { return nil }

func (s *Server) Close() {}

type serverResponse struct {
	Text string `json:"text"`
}

func (s *Server) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(encodeWAV(samples, SampleRate)); err != nil {
		return "", err
	}
	writer.WriteField("response_format", "json")
	if s.lang != "" {
		writer.WriteField("language", s.lang)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("whisper server read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server error %d: %s", resp.StatusCode, string(respBody))
	}

	var sResp serverResponse
	if err := json.Unmarshal(respBody, &sResp); err != nil {
		return "", fmt.Errorf("whisper server response parse: %w", err)
	}
	return strings.TrimSpace(sResp.Text), nil
}
