package rules

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	gameDelivery "nxn_tictactoe/internal/delivery/game"
	"nxn_tictactoe/internal/domain/ruleset"
	"nxn_tictactoe/internal/httpresponse"
	rulesUC "nxn_tictactoe/internal/usecase/rules"
)

type RulesHandler struct {
	log     *zap.SugaredLogger
	rulesUC *rulesUC.RulesUseCase
}

func NewRulesHandler(log *zap.SugaredLogger, uc *rulesUC.RulesUseCase) *RulesHandler {
	return &RulesHandler{log: log, rulesUC: uc}
}

// HandleGetRules serves GET /api/rules/{size}. With ?source=archive the rule
// set is read from the archive instead of the catalog.
func (h *RulesHandler) HandleGetRules(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil {
		httpresponse.WriteError(h.log, w, http.StatusBadRequest, "board size must be an integer")
		return
	}

	var rs ruleset.RuleSet
	if r.URL.Query().Get("source") == "archive" {
		rs, err = h.rulesUC.ArchivedRules(r.Context(), size)
	} else {
		rs, err = h.rulesUC.GetRules(r.Context(), size)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteJSON(h.log, w, http.StatusOK, rs)
}

// HandleListSizes serves GET /api/rules.
func (h *RulesHandler) HandleListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.rulesUC.Sizes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if sizes == nil {
		sizes = []int{}
	}
	httpresponse.WriteJSON(h.log, w, http.StatusOK, ruleset.SizesResponse{Sizes: sizes})
}

func (h *RulesHandler) writeError(w http.ResponseWriter, err error) {
	status := gameDelivery.StatusFromError(err)
	if status == http.StatusInternalServerError {
		h.log.Errorf("rules request failed: %v", err)
		httpresponse.WriteError(h.log, w, status, "Internal server error")
		return
	}
	httpresponse.WriteError(h.log, w, status, err.Error())
}
