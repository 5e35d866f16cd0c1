package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/finance"
	"github.com/papercomputeco/jigyasa/pkg/market"
)

func (s *Server) handleFutureValue(c *fiber.Ctx) error {
	var req FutureValueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	fv := finance.FutureValue(req.PresentValue, req.Rate, req.Periods)
	return c.JSON(FutureValueResponse{FutureValue: fv})
}

func (s *Server) handleCompoundInterest(c *fiber.Ctx) error {
	var req CompoundInterestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	return c.JSON(finance.CompoundInterest(req.Principal, req.Rate, req.Periods, req.CompoundsPerPeriod))
}

func (s *Server) handleNPV(c *fiber.Ctx) error {
	var req NPVRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	return c.JSON(finance.NPV(req.InitialInvestment, req.CashFlows, req.DiscountRate))
}

func (s *Server) handleBreakEven(c *fiber.Ctx) error {
	var req BreakEvenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := finance.BreakEven(req.FixedCosts, req.VariableCostPerUnit, req.PricePerUnit)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(res)
}

func (s *Server) handleWACC(c *fiber.Ctx) error {
	var req WACCRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	wacc, err := finance.WACC(req.MarketValueEquity, req.MarketValueDebt, req.CostOfEquity, req.CostOfDebt, req.TaxRate)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(WACCResponse{WACC: wacc})
}

func (s *Server) handleDCF(c *fiber.Ctx) error {
	var req DCFRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	res, err := finance.DCF(req.FreeCashFlow, req.GrowthRate, req.TerminalGrowth, req.WACC, req.Years)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(res)
}

// handleGetCompanyData fetches the initial company data for a ticker so the
// user can review and complete it before analysis.
func (s *Server) handleGetCompanyData(c *fiber.Ctx) error {
	if s.config.Market == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "company data is not configured"})
	}

	var req CompanySymbolRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Symbol) == "" {
		return badRequest(c, "symbol is required")
	}

	data, err := s.config.Market.Company(c.UserContext(), req.Symbol)
	switch {
	case errors.Is(err, market.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case err != nil:
		s.logger.Error("failed to fetch company data", zap.String("symbol", req.Symbol), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(data)
}

// handleAnalyzeCompany computes the metrics report and asks the model for an
// investment analysis. Metrics are returned even when generation fails.
func (s *Server) handleAnalyzeCompany(c *fiber.Ctx) error {
	var req CompanyAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	metrics, r := s.agents.AnalyzeCompany(c.UserContext(), req.CompanyData)
	return c.JSON(CompanyAnalysisResponse{
		Metrics:     metrics,
		AISummary:   r.Message(),
		CompanyData: req.CompanyData,
		Kind:        string(r.Kind),
	})
}
