package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/contacts"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/triage"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	knowledge *service.KnowledgeService
	triage    *service.TriageService
	contacts  contacts.Defaults
	log       *zap.Logger
}

func NewHandler(knowledge *service.KnowledgeService, triageSvc *service.TriageService, defaults contacts.Defaults, log *zap.Logger) *Handler {
	return &Handler{
		knowledge: knowledge,
		triage:    triageSvc,
		contacts:  defaults,
		log:       log,
	}
}

// GET /api/v1/protocols/:id
func (h *Handler) GetProtocol(c *gin.Context) {
	p, err := h.knowledge.GetProtocol(c.Request.Context(), c.Param("id"), callerFrom(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

// GET /api/v1/protocols?category=
func (h *Handler) ListProtocols(c *gin.Context) {
	out, err := h.knowledge.ListProtocols(c.Request.Context(), c.Query("category"), callerFrom(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondList(c, out)
}

// GET /api/v1/search?q=
func (h *Handler) Search(c *gin.Context) {
	respondList(c, h.knowledge.Search(c.Request.Context(), c.Query("q"), callerFrom(c)))
}

type symptomCheckRequest struct {
	Symptoms []string `json:"symptoms"`
}

// POST /api/v1/symptom-check
func (h *Handler) CheckSymptoms(c *gin.Context) {
	var req symptomCheckRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.knowledge.CheckSymptoms(c.Request.Context(), req.Symptoms, callerFrom(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondList(c, out)
}

// POST /api/v1/triage
func (h *Handler) Triage(c *gin.Context) {
	var req triage.Assessment
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.triage.Classify(c.Request.Context(), req, callerFrom(c))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respondOK(c, res)
}

// GET /api/v1/red-flags
func (h *Handler) ListRedFlags(c *gin.Context) {
	respondList(c, h.knowledge.RedFlags())
}

// GET /api/v1/contacts/template
func (h *Handler) ContactsTemplate(c *gin.Context) {
	respondOK(c, contacts.NewTemplate(h.contacts))
}

type healthResponse struct {
	Status    string    `json:"status"`
	Protocols int       `json:"protocols"`
	RedFlags  int       `json:"redFlags"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	st := h.knowledge.Stats()
	c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Protocols: st.Protocols,
		RedFlags:  st.RedFlags,
		LoadedAt:  st.LoadedAt.UTC(),
	})
}
