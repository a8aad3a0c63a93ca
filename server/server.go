/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

// Package server exposes the evidence chain over HTTP.
package server

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/forensicanalysis/evidencechain"
	"github.com/forensicanalysis/evidencechain/logger"
	"github.com/forensicanalysis/evidencechain/report"
)

// Ledger is the read side of the evidence ledger.
type Ledger interface {
	Chain() ([]evidencechain.EvidenceRecord, *evidencechain.Stats, error)
}

// Recorder records extracted files.
type Recorder interface {
	Record(filePath, operation string) evidencechain.Result
}

// Verifier checks files against the ledger.
type Verifier interface {
	Verify(filePath string) (*evidencechain.VerificationResult, error)
}

// Reports generates and serves forensic reports.
type Reports interface {
	Generate(data report.ExtractionData, metadata report.CaseMetadata) (*report.Report, *report.Files, error)
	Open(reportID string) ([]byte, error)
}

var errOutsideRoot = errors.New("path is outside of the collection root")

// Server routes requests to the evidence chain components.
type Server struct {
	engine   *gin.Engine
	root     string
	ledger   Ledger
	recorder Recorder
	verifier Verifier
	reports  Reports
}

// New creates a Server for the collection root. File paths in requests are
// relative to root.
func New(root string, ledger Ledger, recorder Recorder, verifier Verifier, reports Reports) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(logRequest(), gin.Recovery())

	s := &Server{
		engine:   engine,
		root:     root,
		ledger:   ledger,
		recorder: recorder,
		verifier: verifier,
		reports:  reports,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up", "name": "evidencechain"})
	})
	s.engine.GET("/verify-integrity/*path", s.verifyIntegrity)
	s.engine.GET("/evidence-chain", s.evidenceChain)
	s.engine.POST("/generate-report", s.generateReport)
	s.engine.GET("/download-report/:id", s.downloadReport)
	s.engine.POST("/record", s.record)
}

// Handler returns the http.Handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr and serves requests.
func (s *Server) Run(addr string) error {
	logger.Infof("starting HTTP server on %s", addr)
	return s.engine.Run(addr)
}

// resolve joins a request path to the collection root.
func (s *Server) resolve(name string) (string, error) {
	name = strings.TrimPrefix(filepath.FromSlash(name), string(filepath.Separator))
	if name == "" {
		return "", errors.Wrap(errOutsideRoot, "empty path")
	}
	full := filepath.Join(s.root, name)
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrap(errOutsideRoot, name)
	}
	return full, nil
}

func logRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}).Info("HTTP request")
	}
}
