package api

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/smartlawyer/internal/attachment"
	"github.com/JustJay7/smartlawyer/internal/filelist"
)

// receiveAttachment stores either the multipart "file" field or the document
// behind the "url" form field.
func (h *Handlers) receiveAttachment(c *gin.Context) (attachment.Attachment, bool) {
	ctx := c.Request.Context()

	if url := c.PostForm("url"); url != "" {
		att, err := h.attachments.Download(ctx, url)
		if errors.Is(err, attachment.ErrUnsupportedURL) || errors.Is(err, attachment.ErrTooLarge) {
			h.respondError(c, err)
			return attachment.Attachment{}, false
		}
		if err != nil {
			h.logger.Warn("Failed to download attachment", "url", url, "error", err)
			badRequest(c, "failed to download attachment")
			return attachment.Attachment{}, false
		}
		return att, true
	}

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return attachment.Attachment{}, false
	}
	f, err := header.Open()
	if err != nil {
		h.respondError(c, err)
		return attachment.Attachment{}, false
	}
	defer f.Close()

	att, err := h.attachments.Save(ctx, f, header.Filename)
	if err != nil {
		h.respondError(c, err)
		return attachment.Attachment{}, false
	}
	return att, true
}

func attachPath(documents, images *string, att attachment.Attachment) {
	if att.Kind == attachment.Image {
		*images = filelist.AddPath(*images, att.Path)
		return
	}
	*documents = filelist.AddPath(*documents, att.Path)
}

// detachPath removes path from whichever list holds it and reports whether
// it was found.
func detachPath(documents, images *string, path string) bool {
	if path == "" {
		return false
	}
	for _, list := range []*string{documents, images} {
		if slices.Contains(filelist.Decode(*list), path) {
			*list = filelist.RemovePath(*list, path)
			return true
		}
	}
	return false
}

// discardAttachment deletes a file the store wrote. Paths recorded from
// elsewhere are only unlinked from the row, never deleted.
func (h *Handlers) discardAttachment(path string) {
	if !h.attachments.Owns(path) {
		return
	}
	if err := h.attachments.Remove(path); err != nil {
		h.logger.Warn("Failed to discard attachment", "path", path, "error", err)
	}
}
