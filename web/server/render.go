package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/imagewriter"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string // Built-in scene name or "file:<name>"
	Width        int
	Height       int
	AntiAliasing int  // Sub-pixel grid size; 0 keeps the scene's setting
	JSON         bool // Respond with a JSON envelope instead of a raw PNG
}

// RenderResponse is the JSON envelope of a render
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	Pixels           int     `json:"pixels"`
	PrimaryRays      int     `json:"primaryRays"`
	SubdividedPixels int     `json:"subdividedPixels"`
	RaysPerPixel     float64 `json:"raysPerPixel"`
	Tiles            int     `json:"tiles"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

const consoleBuffer = 64

var renderCounter atomic.Int64

// parseRenderRequest reads the query parameters and resolves the scene they name
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Setup, error) {
	q := r.URL.Query()
	req := &RenderRequest{Scene: q.Get("scene"), JSON: q.Get("format") == "json"}
	if req.Scene == "" {
		req.Scene = "default"
	}

	setup, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = intParam(r, "width", setup.Width, 1, MaxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = intParam(r, "height", setup.Height, 1, MaxImageSize); err != nil {
		return nil, nil, err
	}
	if req.AntiAliasing, err = intParam(r, "aa", 0, 0, 16); err != nil {
		return nil, nil, err
	}
	return req, setup, nil
}

// handleRender renders a scene and responds with the image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, setup, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	cameraConfig := setup.Camera
	if req.AntiAliasing > 0 {
		cameraConfig.AntiAliasing.GridSize = req.AntiAliasing
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var consoleChan chan ConsoleMessage
	if req.JSON {
		consoleChan = make(chan ConsoleMessage, consoleBuffer)
	}
	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	logger := NewWebLogger(renderID, s.logger, consoleChan)

	sink := imagewriter.New(setup.Scene.Name, req.Width, req.Height, imagewriter.Options{})
	camera.SetImageSink(sink).
		SetRayTracer(renderer.NewBasicRayTracer(setup.Scene, s.config.Tracer())).
		SetRenderConfig(s.config.Parallelism()).
		SetLogger(logger)

	stats, err := camera.RenderImage(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	var buf bytes.Buffer
	if err := imagewriter.Encode(&buf, sink.Image(), "png"); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if !req.JSON {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
		w.Header().Set("X-Primary-Rays", strconv.Itoa(stats.PrimaryRays))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}

	close(consoleChan)
	var console []ConsoleMessage
	for msg := range consoleChan {
		console = append(console, msg)
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     toStats(stats),
		Console:   console,
	})
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		Pixels:           stats.Pixels,
		PrimaryRays:      stats.PrimaryRays,
		SubdividedPixels: stats.SubdividedPixels,
		RaysPerPixel:     stats.AverageRaysPerPixel(),
		Tiles:            stats.Tiles,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
	}
}
