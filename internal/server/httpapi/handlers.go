package httpapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/transfer"
)

func (s *Server) handleList(c echo.Context) error {
	xs, err := s.diary.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, xs)
}

func (s *Server) handleGet(c echo.Context) error {
	e, err := s.diary.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// handleCreate saves a new entry. A body carrying the id of an existing
// entry edits it and answers 200 instead of 201.
func (s *Server) handleCreate(c echo.Context) error {
	var d models.Draft
	if err := c.Bind(&d); err != nil {
		return err
	}

	e, err := s.diary.Save(c.Request().Context(), d)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if d.ID != "" && e.ID == d.ID {
		status = http.StatusOK
	}
	return c.JSON(status, e)
}

func (s *Server) handleUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, err := s.diary.Get(ctx, id); err != nil {
		return err
	}

	var d models.Draft
	if err := c.Bind(&d); err != nil {
		return err
	}
	d.ID = id

	e, err := s.diary.Save(ctx, d)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) handleDelete(c echo.Context) error {
	if err := s.diary.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleExport(c echo.Context) error {
	var buf bytes.Buffer
	if _, err := s.transfer.Export(c.Request().Context(), &buf); err != nil {
		return err
	}

	name := transfer.FileName(s.now())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
}

// handleImport accepts the export file either as the raw request body or
// as the multipart form field "file".
func (s *Server) handleImport(c echo.Context) error {
	var r io.Reader = c.Request().Body

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "missing form file \"file\"")
		}
		var f multipart.File
		if f, err = fh.Open(); err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	res, err := s.transfer.Import(c.Request().Context(), r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
