package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"grcdesk-backend/analysis"
	"grcdesk-backend/models"
	"grcdesk-backend/repository"

	"github.com/google/uuid"
)

// SLA windows per severity, counted from report creation
const (
	slaCritical = 48 * time.Hour
	slaHigh     = 96 * time.Hour
	slaMedium   = 7 * 24 * time.Hour
	slaLow      = 14 * 24 * time.Hour
)

// allowedTransitions is the report status machine. A report can only move
// forward along the investigation lifecycle; dismissal is only possible
// during triage.
var allowedTransitions = map[models.ReportStatus][]models.ReportStatus{
	models.ReportStatusReceived:      {models.ReportStatusTriage},
	models.ReportStatusTriage:        {models.ReportStatusInvestigating, models.ReportStatusDismissed},
	models.ReportStatusInvestigating: {models.ReportStatusResolved},
	models.ReportStatusResolved:      {models.ReportStatusClosed},
	models.ReportStatusClosed:        {},
	models.ReportStatusDismissed:     {},
}

// InvalidTransitionError indicates a rejected status transition
type InvalidTransitionError struct {
	From models.ReportStatus
	To   models.ReportStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition report from %s to %s", e.From, e.To)
}

// CanTransition reports whether a status transition is allowed
func CanTransition(from, to models.ReportStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SLADue computes the resolution deadline for a severity from a start time
func SLADue(severity models.ReportSeverity, from time.Time) time.Time {
	switch severity {
	case models.SeverityCritical:
		return from.Add(slaCritical)
	case models.SeverityHigh:
		return from.Add(slaHigh)
	case models.SeverityMedium:
		return from.Add(slaMedium)
	default:
		return from.Add(slaLow)
	}
}

// NewReferenceCode generates a human-friendly reference code for a report
func NewReferenceCode() string {
	return "ETH-" + strings.ToUpper(uuid.New().String()[:8])
}

// ReportService handles business logic for ethics reports
type ReportService struct {
	reportRepo       *repository.EthicsReportRepository
	planRepo         *repository.InvestigationPlanRepository
	actionRepo       *repository.CorrectiveActionRepository
	notificationRepo *repository.NotificationRepository
}

// ReportServiceOption is a functional option for ReportService
type ReportServiceOption func(*ReportService)

// WithEthicsReportRepository sets the ethics report repository
func WithEthicsReportRepository(repo *repository.EthicsReportRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.reportRepo = repo
	}
}

// WithInvestigationPlanRepository sets the investigation plan repository
func WithInvestigationPlanRepository(repo *repository.InvestigationPlanRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.planRepo = repo
	}
}

// WithCorrectiveActionRepository sets the corrective action repository
func WithCorrectiveActionRepository(repo *repository.CorrectiveActionRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.actionRepo = repo
	}
}

// WithNotificationRepository sets the regulatory notification repository
func WithNotificationRepository(repo *repository.NotificationRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.notificationRepo = repo
	}
}

// NewReportService creates a new report service
func NewReportService(opts ...ReportServiceOption) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReportRequest represents a request to create an ethics report
type CreateReportRequest struct {
	TenantID      uuid.UUID
	Title         string
	Description   string
	Category      models.ReportCategory
	Severity      models.ReportSeverity
	ReporterName  *string
	ReporterEmail *string
	Anonymous     bool
}

// CreateReportResult represents the result of creating an ethics report
type CreateReportResult struct {
	Report *models.EthicsReport
}

// CreateReport creates a new ethics report. When the intake omits category or
// severity the keyword classifier fills them in from the description.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest) (*CreateReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Description == "" {
		return nil, errors.New("description is required")
	}

	category := req.Category
	severity := req.Severity
	suggestedCategory, suggestedSeverity := analysis.ClassifyReport(req.Description)
	if category == "" {
		category = suggestedCategory
	}
	if severity == "" {
		severity = suggestedSeverity
	}

	report := &models.EthicsReport{
		TenantID:      req.TenantID,
		ReferenceCode: NewReferenceCode(),
		Category:      category,
		Title:         req.Title,
		Description:   req.Description,
		Severity:      severity,
		Status:        models.ReportStatusReceived,
		Anonymous:     req.Anonymous,
		SLADueAt:      SLADue(severity, time.Now()),
	}

	if !req.Anonymous {
		report.ReporterName = req.ReporterName
		report.ReporterEmail = req.ReporterEmail
	}

	err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, err
	}

	return &CreateReportResult{Report: report}, nil
}

// GetReportRequest represents a request to get an ethics report
type GetReportRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
}

// GetReportResult represents the result of getting an ethics report
type GetReportResult struct {
	Report *models.EthicsReport
}

// GetReport retrieves a report by ID and recomputes the SLA breach flag
func (s *ReportService) GetReport(ctx context.Context, req GetReportRequest) (*GetReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	report, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	breached := reportBreachesSLA(report, time.Now())
	if breached != report.SLABreach {
		report.SLABreach = breached
		if err := s.reportRepo.Update(ctx, report); err != nil {
			return nil, err
		}
	}

	return &GetReportResult{Report: report}, nil
}

// reportBreachesSLA checks whether a report has passed its deadline without
// reaching a terminal or resolved state
func reportBreachesSLA(report *models.EthicsReport, now time.Time) bool {
	switch report.Status {
	case models.ReportStatusResolved, models.ReportStatusClosed, models.ReportStatusDismissed:
		return report.SLABreach
	}
	return now.After(report.SLADueAt)
}

// ListReportsRequest represents a request to list ethics reports
type ListReportsRequest struct {
	TenantID *uuid.UUID
	Status   *models.ReportStatus
	Limit    int
	Offset   int
}

// ListReportsResult represents the result of listing ethics reports
type ListReportsResult struct {
	Reports []*models.EthicsReport
}

// ListReports lists reports scoped to a tenant. A nil TenantID lists across
// all tenants (platform admin only, enforced at the handler).
func (s *ReportService) ListReports(ctx context.Context, req ListReportsRequest) (*ListReportsResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	reports, err := s.reportRepo.List(ctx, req.TenantID, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListReportsResult{Reports: reports}, nil
}

// TransitionReportRequest represents a request to change a report's status
type TransitionReportRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	To       models.ReportStatus
}

// TransitionReportResult represents the result of a status transition
type TransitionReportResult struct {
	Report *models.EthicsReport
}

// TransitionReport moves a report through its status machine. Disallowed
// transitions return an InvalidTransitionError and leave the report untouched.
func (s *ReportService) TransitionReport(ctx context.Context, req TransitionReportRequest) (*TransitionReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	report, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(report.Status, req.To) {
		return nil, &InvalidTransitionError{From: report.Status, To: req.To}
	}

	report.Status = req.To
	if req.To == models.ReportStatusClosed || req.To == models.ReportStatusDismissed {
		now := time.Now()
		report.ClosedAt = &now
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	return &TransitionReportResult{Report: report}, nil
}

// AssignReportRequest represents a request to assign a report to a user
type AssignReportRequest struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	AssignedTo uuid.UUID
}

// AssignReportResult represents the result of assigning a report
type AssignReportResult struct {
	Report *models.EthicsReport
}

// AssignReport assigns a report to an investigator
func (s *ReportService) AssignReport(ctx context.Context, req AssignReportRequest) (*AssignReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	report, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	assignee := req.AssignedTo
	report.AssignedTo = &assignee

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	return &AssignReportResult{Report: report}, nil
}

// SavePlanRequest represents a request to create or replace an investigation plan
type SavePlanRequest struct {
	TenantID uuid.UUID
	ReportID uuid.UUID
	Summary  string
	Steps    models.PlanSteps
}

// SavePlanResult represents the result of saving an investigation plan
type SavePlanResult struct {
	Plan *models.InvestigationPlan
}

// SavePlan creates or replaces the investigation plan for a report. Each
// report carries at most one plan.
func (s *ReportService) SavePlan(ctx context.Context, req SavePlanRequest) (*SavePlanResult, error) {
	if s.planRepo == nil {
		return nil, errors.New("investigation plan repository not set")
	}
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	// Plans only attach to reports that exist in the same tenant
	if _, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ReportID); err != nil {
		return nil, err
	}

	plan := &models.InvestigationPlan{
		TenantID: req.TenantID,
		ReportID: req.ReportID,
		Summary:  req.Summary,
		Steps:    req.Steps,
		Status:   models.PlanStatusDraft,
	}

	if err := s.planRepo.Upsert(ctx, plan); err != nil {
		return nil, err
	}

	return &SavePlanResult{Plan: plan}, nil
}

// UpdatePlanStepsRequest represents a request to update plan step statuses
type UpdatePlanStepsRequest struct {
	TenantID uuid.UUID
	PlanID   uuid.UUID
	Steps    models.PlanSteps
}

// UpdatePlanStepsResult represents the result of updating plan steps
type UpdatePlanStepsResult struct {
	Plan *models.InvestigationPlan
}

// UpdatePlanSteps replaces the plan's step list and derives the plan status
// from the steps: completed when every step is completed or skipped, in
// progress when any step has started, draft otherwise.
func (s *ReportService) UpdatePlanSteps(ctx context.Context, req UpdatePlanStepsRequest) (*UpdatePlanStepsResult, error) {
	if s.planRepo == nil {
		return nil, errors.New("investigation plan repository not set")
	}

	plan, err := s.planRepo.GetByID(ctx, req.TenantID, req.PlanID)
	if err != nil {
		return nil, err
	}

	status := PlanStatusFromSteps(req.Steps)
	if err := s.planRepo.UpdateSteps(ctx, req.TenantID, req.PlanID, req.Steps, status); err != nil {
		return nil, err
	}

	plan.Steps = req.Steps
	plan.Status = status

	return &UpdatePlanStepsResult{Plan: plan}, nil
}

// PlanStatusFromSteps derives the plan status from its step statuses
func PlanStatusFromSteps(steps models.PlanSteps) models.PlanStatus {
	if len(steps) == 0 {
		return models.PlanStatusDraft
	}

	allDone := true
	anyStarted := false
	for _, step := range steps {
		switch step.Status {
		case "completed", "skipped":
			anyStarted = true
		case "in_progress":
			anyStarted = true
			allDone = false
		default:
			allDone = false
		}
	}

	if allDone {
		return models.PlanStatusCompleted
	}
	if anyStarted {
		return models.PlanStatusInProgress
	}
	return models.PlanStatusDraft
}

// CreateActionRequest represents a request to create a corrective action
type CreateActionRequest struct {
	TenantID    uuid.UUID
	ReportID    uuid.UUID
	Description string
	Owner       string
	DueAt       time.Time
}

// CreateActionResult represents the result of creating a corrective action
type CreateActionResult struct {
	Action *models.CorrectiveAction
}

// CreateAction attaches a corrective action to a report
func (s *ReportService) CreateAction(ctx context.Context, req CreateActionRequest) (*CreateActionResult, error) {
	if s.actionRepo == nil {
		return nil, errors.New("corrective action repository not set")
	}
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	if req.Description == "" {
		return nil, errors.New("description is required")
	}
	if req.Owner == "" {
		return nil, errors.New("owner is required")
	}

	if _, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ReportID); err != nil {
		return nil, err
	}

	action := &models.CorrectiveAction{
		TenantID:    req.TenantID,
		ReportID:    req.ReportID,
		Description: req.Description,
		Owner:       req.Owner,
		Status:      models.ActionStatusOpen,
		DueAt:       req.DueAt,
	}

	if err := s.actionRepo.Create(ctx, action); err != nil {
		return nil, err
	}

	return &CreateActionResult{Action: action}, nil
}

// CompleteActionRequest represents a request to complete a corrective action
type CompleteActionRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
}

// CompleteActionResult represents the result of completing a corrective action
type CompleteActionResult struct {
	Action *models.CorrectiveAction
}

// CompleteAction marks a corrective action as completed
func (s *ReportService) CompleteAction(ctx context.Context, req CompleteActionRequest) (*CompleteActionResult, error) {
	if s.actionRepo == nil {
		return nil, errors.New("corrective action repository not set")
	}

	if err := s.actionRepo.Complete(ctx, req.TenantID, req.ID); err != nil {
		return nil, err
	}

	action, err := s.actionRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	return &CompleteActionResult{Action: action}, nil
}

// NotifyRegulatorRequest represents a request to record a regulatory notification
type NotifyRegulatorRequest struct {
	TenantID   uuid.UUID
	ReportID   uuid.UUID
	Authority  string
	Reference  *string
	NotifiedAt time.Time
	Notes      *string
}

// NotifyRegulatorResult represents the result of recording a notification
type NotifyRegulatorResult struct {
	Notification *models.RegulatoryNotification
}

// NotifyRegulator records that a regulator was notified about a report
func (s *ReportService) NotifyRegulator(ctx context.Context, req NotifyRegulatorRequest) (*NotifyRegulatorResult, error) {
	if s.notificationRepo == nil {
		return nil, errors.New("notification repository not set")
	}
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	if req.Authority == "" {
		return nil, errors.New("authority is required")
	}

	if _, err := s.reportRepo.GetByID(ctx, req.TenantID, req.ReportID); err != nil {
		return nil, err
	}

	notifiedAt := req.NotifiedAt
	if notifiedAt.IsZero() {
		notifiedAt = time.Now()
	}

	notification := &models.RegulatoryNotification{
		TenantID:   req.TenantID,
		ReportID:   req.ReportID,
		Authority:  req.Authority,
		Reference:  req.Reference,
		NotifiedAt: notifiedAt,
		Notes:      req.Notes,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return &NotifyRegulatorResult{Notification: notification}, nil
}
