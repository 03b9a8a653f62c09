package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
	"github.com/ojuto/zendesk-user-reports/internal/infrastructure/excel"
	"github.com/ojuto/zendesk-user-reports/internal/infrastructure/zendesk"
)

// Sheet titles in their fixed workbook order.
const (
	SheetInactive45      = "Inactive 45 Days or more"
	SheetSuspendedNotLA  = "Suspended agents not LA"
	SheetLightAgentNotLA = "Light agent active not LA"
	SheetFunctionalUsers = "Functional users"
	SheetBrandRoleCount  = "Brand role count"
	SheetCommonUsers     = "Agents in both instances"
)

// Fetcher is the paged fetch capability one instance client provides.
type Fetcher interface {
	Name() string
	FetchAllUsers(ctx context.Context) ([]entity.User, error)
	FetchAllCustomAgentRoles(ctx context.Context) ([]entity.CustomAgentRole, error)
	FetchAllBrands(ctx context.Context) ([]entity.Brand, error)
	FetchAllBrandAgents(ctx context.Context) ([]entity.BrandAgent, error)
}

var _ Fetcher = (*zendesk.Client)(nil)

// ReportService fetches both instances, classifies and reconciles the
// collections, and writes the six-sheet report workbook.
type ReportService struct {
	Primary   Fetcher
	Secondary Fetcher
	Logger    *logrus.Logger
}

// NewReportService wires the service with its two instance clients.
func NewReportService(primary, secondary Fetcher, logger *logrus.Logger) *ReportService {
	return &ReportService{Primary: primary, Secondary: secondary, Logger: logger}
}

// instanceData holds everything fetched from one instance.
type instanceData struct {
	users       []entity.User
	roles       []entity.CustomAgentRole
	brands      []entity.Brand
	brandAgents []entity.BrandAgent
}

// Run performs one full report generation: eight concurrent fetches with a
// fail-fast join, then the sequential layout phase. Nothing is written on
// error.
func (s *ReportService) Run(ctx context.Context, outputPath string) error {
	log := s.Logger.WithField("run_id", uuid.NewString())
	log.Info("report generation started")

	var vi, vde instanceData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { vi.users, err = s.Primary.FetchAllUsers(gctx); return })
	g.Go(func() (err error) { vde.users, err = s.Secondary.FetchAllUsers(gctx); return })
	g.Go(func() (err error) { vi.roles, err = s.Primary.FetchAllCustomAgentRoles(gctx); return })
	g.Go(func() (err error) { vde.roles, err = s.Secondary.FetchAllCustomAgentRoles(gctx); return })
	g.Go(func() (err error) { vi.brands, err = s.Primary.FetchAllBrands(gctx); return })
	g.Go(func() (err error) { vde.brands, err = s.Secondary.FetchAllBrands(gctx); return })
	g.Go(func() (err error) { vi.brandAgents, err = s.Primary.FetchAllBrandAgents(gctx); return })
	g.Go(func() (err error) { vde.brandAgents, err = s.Secondary.FetchAllBrandAgents(gctx); return })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetching collections: %w", err)
	}

	log.WithFields(logrus.Fields{
		"vi_users":  len(vi.users),
		"vde_users": len(vde.users),
		"vi_brands": len(vi.brands),
	}).Info("all collections fetched")

	wb, err := excel.NewWorkbook()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	if err := s.buildSheets(wb, vi, vde); err != nil {
		return err
	}
	if err := wb.Save(outputPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	log.WithField("output", outputPath).Info("report written")
	return nil
}

func (s *ReportService) buildSheets(wb *excel.Workbook, vi, vde instanceData) error {
	now := time.Now()

	cohorts := []struct {
		sheet  string
		filter func([]entity.User) []entity.User
	}{
		{SheetInactive45, func(users []entity.User) []entity.User { return AgentsInactive45Days(users, now) }},
		{SheetSuspendedNotLA, SuspendedAgentsNotLightAgents},
		{SheetLightAgentNotLA, LightAgentActiveButNotLightAgent},
		{SheetFunctionalUsers, FunctionalUsers},
	}
	for _, c := range cohorts {
		err := wb.AddUserSheet(c.sheet,
			WithRoleNames(c.filter(vi.users), vi.roles),
			WithRoleNames(c.filter(vde.users), vde.roles),
		)
		if err != nil {
			return fmt.Errorf("building sheet %q: %w", c.sheet, err)
		}
	}

	eligibleVI := BrandRoleCountUsers(vi.users)
	eligibleVDE := BrandRoleCountUsers(vde.users)
	err := wb.AddBrandRoleCountSheet(SheetBrandRoleCount,
		BrandRoleTallies(vi.brands, vi.brandAgents, eligibleVI, vi.roles),
		BrandRoleTallies(ExcludeVorwerkInternational(vde.brands), vde.brandAgents, eligibleVDE, vde.roles),
		AggregateRoleTally(vi.brandAgents, eligibleVI, vi.roles),
	)
	if err != nil {
		return fmt.Errorf("building sheet %q: %w", SheetBrandRoleCount, err)
	}

	shared := SharedUsers(
		WithRoleNames(CommonUsers(vi.users), vi.roles),
		WithRoleNames(CommonUsers(vde.users), vde.roles),
	)
	err = wb.AddCommonUsersSheet(SheetCommonUsers,
		shared,
		DoubleUsedSeats(len(shared)),
		CountUsedSeats(vi.users, vde.users),
	)
	if err != nil {
		return fmt.Errorf("building sheet %q: %w", SheetCommonUsers, err)
	}
	return nil
}
