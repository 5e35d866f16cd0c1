package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleListNotes returns every note in insertion order.
func (s *Server) handleListNotes(c *fiber.Ctx) error {
	notes := s.notes.Snapshot()
	if notes == nil {
		notes = []string{}
	}
	return c.JSON(NotesResponse{Notes: notes})
}

// handleAddNote appends a note verbatim.
func (s *Server) handleAddNote(c *fiber.Ctx) error {
	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "text is required")
	}

	count := s.notes.Add(req.Text)
	s.logger.Debug("note added", zap.Int("note_count", count))
	return c.JSON(NoteCountResponse{Status: "success", NoteCount: count})
}

// handleAddManualNote appends a note marked as manual or AI-derived.
func (s *Server) handleAddManualNote(c *fiber.Ctx) error {
	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "text is required")
	}

	count := s.notes.AddManual(req.Text)
	s.logger.Debug("manual note added", zap.Int("note_count", count))
	return c.JSON(NoteCountResponse{Status: "success", NoteCount: count})
}

// handleAsk answers a question from the notebook.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	r := s.agents.Ask(c.UserContext(), req.Question, s.notes.Snapshot())
	return c.JSON(AnswerResponse{Answer: r.Message(), Kind: string(r.Kind)})
}

// handleCheckContradictions checks the latest note against the earlier ones.
func (s *Server) handleCheckContradictions(c *fiber.Ctx) error {
	r := s.agents.CheckLatest(c.UserContext(), s.notes.Snapshot())
	return c.JSON(ResultResponse{Result: r.Message(), Kind: string(r.Kind)})
}

// handleVerify checks a candidate note before it is added.
func (s *Server) handleVerify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.NewNote) == "" {
		return badRequest(c, "new_note is required")
	}

	existing := req.Notes
	if existing == nil {
		existing = s.notes.Snapshot()
	}

	r := s.agents.Verify(c.UserContext(), req.NewNote, existing)
	return c.JSON(ResultResponse{Result: r.Message(), Kind: string(r.Kind)})
}

// handleExtractData turns raw text into a markdown table.
func (s *Server) handleExtractData(c *fiber.Ctx) error {
	var req RawTextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	r := s.agents.Extract(c.UserContext(), req.Text)
	return c.JSON(StructuredDataResponse{StructuredData: r.Message(), Kind: string(r.Kind)})
}

// handleGuideResearch asks Socratic questions about the given data.
func (s *Server) handleGuideResearch(c *fiber.Ctx) error {
	var req InquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	r := s.agents.Guide(c.UserContext(), s.notes.Snapshot(), req.FinancialData)
	return c.JSON(GuidanceResponse{Guidance: r.Message(), Kind: string(r.Kind)})
}

// handleSummarizeURL summarizes an article in the context of the notebook.
func (s *Server) handleSummarizeURL(c *fiber.Ctx) error {
	var req URLRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.URL) == "" {
		return badRequest(c, "url is required")
	}

	s.logger.Debug("summarizing url", zap.String("url", req.URL))
	r := s.agents.Summarize(c.UserContext(), req.URL, s.notes.Snapshot())
	return c.JSON(SummaryResponse{Summary: r.Message(), Kind: string(r.Kind)})
}

// handleXRay reads an uploaded PDF and summarizes its contents.
func (s *Server) handleXRay(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "multipart field \"file\" is required")
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("failed to open upload", zap.String("file", fh.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to open upload"})
	}
	defer f.Close()

	r := s.agents.XRay(c.UserContext(), f, fh.Size)
	return c.JSON(ResultResponse{Result: r.Message(), Kind: string(r.Kind)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}
