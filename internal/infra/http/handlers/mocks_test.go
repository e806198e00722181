package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

type MockCampaignRepository struct{ mock.Mock }

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*entity.Campaign); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]entity.CampaignSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.CampaignSummary), args.Error(1)
}

type MockLandingPageRepository struct{ mock.Mock }

func (m *MockLandingPageRepository) Create(ctx context.Context, p *entity.LandingPage) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockLandingPageRepository) FindByID(ctx context.Context, id string) (*entity.LandingPage, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.LandingPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLandingPageRepository) FindBySlug(ctx context.Context, slug string) (*entity.LandingPage, error) {
	args := m.Called(ctx, slug)
	if p, ok := args.Get(0).(*entity.LandingPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLandingPageRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.LandingPage, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]entity.LandingPage), args.Error(1)
}

func (m *MockLandingPageRepository) Update(ctx context.Context, p *entity.LandingPage) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockLandingPageRepository) SaveContent(ctx context.Context, id string, content landing.Content, isPublished bool) error {
	return m.Called(ctx, id, content, isPublished).Error(0)
}

func (m *MockLandingPageRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockLeadRepository struct{ mock.Mock }

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*entity.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, campaignID string) ([]entity.Lead, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) MarkNotificationQueued(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockLeadRepository) ListUnnotified(ctx context.Context, olderThan time.Time, limit int) ([]entity.Lead, error) {
	args := m.Called(ctx, olderThan, limit)
	return args.Get(0).([]entity.Lead), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Create(ctx context.Context, v *entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Vehicle); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]entity.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) SetQRCode(ctx context.Context, id, dataURL string) error {
	return m.Called(ctx, id, dataURL).Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockConsultantRepository struct{ mock.Mock }

func (m *MockConsultantRepository) Create(ctx context.Context, c *entity.Consultant) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockConsultantRepository) FindByID(ctx context.Context, id string) (*entity.Consultant, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*entity.Consultant); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConsultantRepository) List(ctx context.Context) ([]entity.Consultant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Consultant), args.Error(1)
}

func (m *MockConsultantRepository) Update(ctx context.Context, c *entity.Consultant) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockConsultantRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockQRCodeRepository struct{ mock.Mock }

func (m *MockQRCodeRepository) Create(ctx context.Context, q *entity.QRCode) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQRCodeRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.QRCode, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]entity.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) IncrementScans(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockPageCache struct{ mock.Mock }

func (m *MockPageCache) Get(ctx context.Context, slug string) ([]byte, bool, error) {
	args := m.Called(ctx, slug)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *MockPageCache) Set(ctx context.Context, slug string, html []byte) error {
	return m.Called(ctx, slug, html).Error(0)
}

func (m *MockPageCache) Invalidate(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}
