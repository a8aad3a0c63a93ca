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

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/forensicanalysis/evidencechain"
	"github.com/forensicanalysis/evidencechain/logger"
	"github.com/forensicanalysis/evidencechain/report"
)

type recordRequest struct {
	Path      string `json:"path" form:"path" binding:"required"`
	Operation string `json:"operation" form:"operation"`
}

type reportRequest struct {
	report.CaseMetadata
	Extraction *report.ExtractionData `json:"extraction"`
}

func errorResponse(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"status": "error", "message": err.Error()})
}

func (s *Server) verifyIntegrity(c *gin.Context) {
	filePath, err := s.resolve(c.Param("path"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	result, err := s.verifier.Verify(filePath)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case evidencechain.IsNotFound(err), errors.Is(err, evidencechain.ErrNoReferenceRecord):
		errorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, evidencechain.ErrNotRegularFile):
		errorResponse(c, http.StatusBadRequest, err)
	default:
		logger.Errorf("could not verify %s: %v", filePath, err)
		errorResponse(c, http.StatusInternalServerError, err)
	}
}

func (s *Server) evidenceChain(c *gin.Context) {
	records, stats, err := s.ledger.Chain()
	if errors.Is(err, evidencechain.ErrLedgerNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"evidence_chain": []evidencechain.EvidenceRecord{},
			"stats":          evidencechain.Stats{LastUpdate: "N/A"},
		})
		return
	}
	if err != nil {
		logger.Errorf("could not read evidence ledger: %v", err)
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evidence_chain": records, "stats": stats})
}

func (s *Server) generateReport(c *gin.Context) {
	var request reportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&request); err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
	}
	data := report.ExtractionData{}
	if request.Extraction != nil {
		data = *request.Extraction
	}

	generated, files, err := s.reports.Generate(data, request.CaseMetadata)
	if err != nil {
		logger.Errorf("could not generate report: %v", err)
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Report generated",
		"report_id": generated.ReportID,
		"files":     files,
	})
}

func (s *Server) downloadReport(c *gin.Context) {
	reportID := c.Param("id")
	content, err := s.reports.Open(reportID)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		errorResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.html"`, reportID))
	c.Data(http.StatusOK, "text/html; charset=utf-8", content)
}

func (s *Server) record(c *gin.Context) {
	var request recordRequest
	if err := c.ShouldBind(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}
	filePath, err := s.resolve(request.Path)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err)
		return
	}

	result := s.recorder.Record(filePath, request.Operation)
	c.JSON(http.StatusOK, result.Record)
}
