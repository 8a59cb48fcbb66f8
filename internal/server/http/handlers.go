package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/models"
	"github.com/dmitrijs2005/scanmed/internal/server/services"
	"github.com/gin-gonic/gin"
)

type handler struct {
	svc    Services
	logger logging.Logger
}

func trashFilter(c *gin.Context) (models.TrashFilter, error) {
	include, _ := strconv.ParseBool(c.Query("includeTrashed"))
	return models.ParseTrashFilter(c.Query("view"), include)
}

// trash builds the DELETE and PATCH .../restore handlers for kind.
func (h *handler) trash(kind models.Kind, restore bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		if restore {
			err = h.svc.Records.Restore(c.Request.Context(), kind, c.Param("id"), requesterID(c))
		} else {
			err = h.svc.Records.SoftDelete(c.Request.Context(), kind, c.Param("id"), requesterID(c))
		}
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		msg := "Moved to trash"
		if restore {
			msg = "Restored"
		}
		respond(c, http.StatusOK, msg, "", nil)
	}
}

func (h *handler) createScan(c *gin.Context) {
	var in models.ScanInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	scan, err := h.svc.Records.CreateScan(c.Request.Context(), requesterID(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Scan saved", "scan", scan)
}

func (h *handler) listScans(c *gin.Context) {
	filter, err := trashFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	scans, err := h.svc.Records.ListScans(c.Request.Context(), requesterID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "scans", scans)
}

func (h *handler) getScan(c *gin.Context) {
	scan, err := h.svc.Records.GetScan(c.Request.Context(), requesterID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "scan", scan)
}

type uploadRequest struct {
	ContentType string `json:"contentType"`
}

func (h *handler) presignUpload(c *gin.Context) {
	var req uploadRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	key, url, err := h.svc.Images.PresignUpload(c.Request.Context(), requesterID(c), req.ContentType)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "key": key, "url": url})
}

func (h *handler) scanImage(c *gin.Context) {
	url, err := h.svc.Images.PresignScanImage(c.Request.Context(), requesterID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "url", url)
}

func (h *handler) createMedication(c *gin.Context) {
	var in models.MedicationInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	m, err := h.svc.Records.CreateMedication(c.Request.Context(), requesterID(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Medication added", "medication", m)
}

func (h *handler) listMedications(c *gin.Context) {
	filter, err := trashFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	ms, err := h.svc.Records.ListMedications(c.Request.Context(), requesterID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "medications", ms)
}

func (h *handler) updateMedication(c *gin.Context) {
	var patch models.MedicationPatch
	if err := bindJSON(c, &patch); err != nil {
		writeError(c, h.logger, err)
		return
	}
	m, err := h.svc.Records.UpdateMedication(c.Request.Context(), requesterID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Medication updated", "medication", m)
}

func (h *handler) createReading(c *gin.Context) {
	var in models.ReadingInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	e, err := h.svc.Records.CreateReading(c.Request.Context(), requesterID(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Reading logged", "log", e)
}

func (h *handler) listReadings(c *gin.Context) {
	filter, err := trashFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	es, err := h.svc.Records.ListReadings(c.Request.Context(), requesterID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "history", es)
}

func (h *handler) createChat(c *gin.Context) {
	var in models.ChatInput
	if err := bindJSON(c, &in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	chat, err := h.svc.Records.CreateChat(c.Request.Context(), requesterID(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Chat saved", "chat", chat)
}

func (h *handler) listChats(c *gin.Context) {
	filter, err := trashFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	chats, err := h.svc.Records.ListChats(c.Request.Context(), requesterID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "chats", chats)
}

func (h *handler) fetchHistory(c *gin.Context) (*services.History, bool) {
	filter, err := trashFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return nil, false
	}
	hist, err := h.svc.History.FetchHistory(c.Request.Context(), requesterID(c), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return nil, false
	}
	return hist, true
}

// history answers with every section; failed sections carry an "error"
// field while success stays true.
func (h *handler) history(c *gin.Context) {
	hist, ok := h.fetchHistory(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"timezone":       h.svc.History.Formatter().Location().String(),
		"scans":          hist.Scans,
		"medications":    hist.Medications,
		"readingHistory": hist.Readings,
		"chats":          hist.Chats,
	})
}

func (h *handler) exportHistory(c *gin.Context) {
	hist, ok := h.fetchHistory(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.ExportHistory(&buf, hist); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="scanmed-history.xlsx"`)
	c.Data(http.StatusOK, services.ExportContentType, buf.Bytes())
}

func (h *handler) stats(c *gin.Context) {
	st, err := h.svc.Admin.ScanStats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", "stats", st)
}

func (h *handler) health(c *gin.Context) {
	if err := h.svc.Admin.Ping(c.Request.Context()); err != nil {
		h.logger.Error(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}
