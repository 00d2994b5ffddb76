package rest

import (
	"errors"
	"net/http"

	"github.com/syntrixbase/pager/internal/ctxkeys"
	"github.com/syntrixbase/pager/pkg/model"
)

func (h *Handler) handlePaginateQuery(w http.ResponseWriter, r *http.Request) {
	req, err := decodeQuery(r.URL.Query())
	if err != nil {
		h.writePagerError(r.Context(), w, err)
		return
	}
	h.paginate(w, r, req)
}

func (h *Handler) handlePaginateBody(w http.ResponseWriter, r *http.Request) {
	req, err := model.DecodePageRequest(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return
	}
	h.paginate(w, r, req)
}

func (h *Handler) paginate(w http.ResponseWriter, r *http.Request, req model.PageRequest) {
	if err := req.CheckLimits(h.cfg.MaxPageSize); err != nil {
		h.writePagerError(r.Context(), w, err)
		return
	}

	collection := r.PathValue("collection")
	ctx := ctxkeys.WithCollection(r.Context(), collection)

	conn, err := h.registry.Call(ctx, collection, r.PathValue("method"), req)
	if err != nil {
		h.writePagerError(ctx, w, err)
		return
	}

	h.logger.DebugContext(ctx, "Paginated",
		"edges", len(conn.Edges),
		"total", conn.TotalCount,
	)
	writeJSON(w, http.StatusOK, conn)
}

type collectionsResponse struct {
	Method      string   `json:"method"`
	Collections []string `json:"collections"`
}

func (h *Handler) handleCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, collectionsResponse{
		Method:      h.registry.MethodName(),
		Collections: h.registry.Collections(),
	})
}
