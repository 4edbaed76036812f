package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type Metrics struct {
	registrationsCreated metric.Int64Counter
	registrationsDeleted metric.Int64Counter
	listViews            metric.Int64Counter
	exportsGenerated     metric.Int64Counter
	adminLogins          metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.registrationsCreated, err = meter.Int64Counter(
		"registration_service.registrations.created",
		metric.WithDescription("Total number of registrations created"),
		metric.WithUnit("{registration}"),
	)
	if err != nil {
		return nil, err
	}

	m.registrationsDeleted, err = meter.Int64Counter(
		"registration_service.registrations.delete_requests",
		metric.WithDescription("Total number of delete operations performed by admins"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	m.listViews, err = meter.Int64Counter(
		"registration_service.registrations.list_viewed",
		metric.WithDescription("Total number of times the registration list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.exportsGenerated, err = meter.Int64Counter(
		"registration_service.exports.generated",
		metric.WithDescription("Total number of CSV exports generated"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	m.adminLogins, err = meter.Int64Counter(
		"registration_service.admin.logins",
		metric.WithDescription("Total number of successful admin logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMock returns metrics backed by a noop meter, for tests.
func NewMock() *Metrics {
	m, _ := New(noop.NewMeterProvider().Meter("mock"))
	return m
}

func (m *Metrics) RecordRegistrationCreated(ctx context.Context) {
	if m != nil && m.registrationsCreated != nil {
		m.registrationsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordDeleteRequest(ctx context.Context) {
	if m != nil && m.registrationsDeleted != nil {
		m.registrationsDeleted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordListViewed(ctx context.Context) {
	if m != nil && m.listViews != nil {
		m.listViews.Add(ctx, 1)
	}
}

func (m *Metrics) RecordExportGenerated(ctx context.Context) {
	if m != nil && m.exportsGenerated != nil {
		m.exportsGenerated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordAdminLogin(ctx context.Context) {
	if m != nil && m.adminLogins != nil {
		m.adminLogins.Add(ctx, 1)
	}
}
