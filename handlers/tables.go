package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const (
	minQRSize     = 128
	maxQRSize     = 1024
	defaultQRSize = 256
)

// TableURL is the diner link a table's QR code points at
func (h *Handler) TableURL(table string) string {
	return h.opts.PublicURL + "/?table=" + url.QueryEscape(table)
}

// TableQRCode renders the PNG printed on a table
func (h *Handler) TableQRCode(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	if table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Table number is required"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultQRSize)))
	if err != nil || size < minQRSize || size > maxQRSize {
		size = defaultQRSize
	}

	png, err := qrcode.Encode(h.TableURL(table), qrcode.Medium, size)
	if err != nil {
		internalError(c, "Failed to render QR code", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="table-`+url.PathEscape(table)+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
