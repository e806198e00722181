package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestLandingPageRepository(t *testing.T) {
	ctx := context.Background()
	doc, err := landing.GetTemplate("minimal")
	require.NoError(t, err)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	now := time.Now()

	t.Run("create maps unique violation to slug taken", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO landing_pages")).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "landing_pages_slug_key"})

		page := &entity.LandingPage{ID: "lp-1", CampaignID: "camp-1", Name: "Promo", Slug: "promo", Content: doc}
		err := NewLandingPageRepository(db).Create(ctx, page)
		assert.ErrorIs(t, err, entity.ErrSlugTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by slug decodes content", func(t *testing.T) {
		db, mock := newMock(t)
		rows := sqlmock.NewRows([]string{"id", "campaign_id", "name", "slug", "content", "is_published", "created_at", "updated_at"}).
			AddRow("lp-1", "camp-1", "Promo", "promo", raw, true, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM landing_pages WHERE slug = $1")).WithArgs("promo").WillReturnRows(rows)

		page, err := NewLandingPageRepository(db).FindBySlug(ctx, "promo")
		require.NoError(t, err)
		assert.True(t, page.IsPublished)
		assert.Equal(t, doc, page.Content)
	})

	t.Run("missing page", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM landing_pages WHERE id = $1")).WillReturnError(sql.ErrNoRows)

		_, err := NewLandingPageRepository(db).FindByID(ctx, "nope")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("save content replaces document and flag", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_pages")).
			WithArgs("lp-1", string(raw), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewLandingPageRepository(db).SaveContent(ctx, "lp-1", doc, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save on unknown page", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE landing_pages")).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewLandingPageRepository(db).SaveContent(ctx, "lp-x", doc, false)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestLeadRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("create", func(t *testing.T) {
		db, mock := newMock(t)
		campaignID := "camp-1"
		lead := &entity.Lead{ID: "lead-1", CampaignID: &campaignID, Email: "a@b.co", Source: "landing_page",
			Metadata: map[string]string{"windowCount": "5-10"}, CreatedAt: now}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads")).
			WithArgs("lead-1", sqlmock.AnyArg(), nil, nil, "a@b.co", nil, nil, nil, nil, "landing_page", `{"windowCount":"5-10"}`, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewLeadRepository(db).Create(ctx, lead))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list newest first with metadata", func(t *testing.T) {
		db, mock := newMock(t)
		cols := []string{"id", "campaign_id", "landing_page_id", "vehicle_id", "email", "name", "phone", "address", "message",
			"source", "metadata", "notification_queued_at", "created_at"}
		rows := sqlmock.NewRows(cols).
			AddRow("lead-2", "camp-1", nil, nil, "b@b.co", "", "", "", "", "direct", []byte(`{}`), now, now).
			AddRow("lead-1", "camp-1", "lp-1", nil, "a@b.co", "Ann", "", "", "", "landing_page", []byte(`{"windowCount":"1-5"}`), nil, now)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE campaign_id = $1 ORDER BY created_at DESC")).WithArgs("camp-1").WillReturnRows(rows)

		leads, err := NewLeadRepository(db).List(ctx, "camp-1")
		require.NoError(t, err)
		require.Len(t, leads, 2)
		assert.NotNil(t, leads[0].NotificationQueuedAt)
		assert.Nil(t, leads[1].NotificationQueuedAt)
		assert.Equal(t, "lp-1", *leads[1].LandingPageID)
		assert.Nil(t, leads[1].VehicleID)
		assert.Equal(t, "1-5", leads[1].Metadata["windowCount"])
	})
}

func TestConsultantDeleteInUse(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM consultants")).
		WillReturnError(&pgconn.PgError{
			Code:      "23503",
			TableName: "vehicles",
			Detail:    `Key (id)=(c1) is still referenced from table "vehicles".`,
		})

	err := NewConsultantRepository(db).Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, entity.ErrInUse)
}

func TestVehicleFindByIDJoinsConsultant(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "year", "make", "model", "vehicle_number", "consultant_id", "qr_code_url",
		"created_at", "updated_at", "c_id", "c_name", "c_email", "c_phone", "c_created_at", "c_updated_at"}).
		AddRow("veh-1", 2021, "Ford", "Transit", "T-1", "cons-1", "data:image/png;base64,AA", now, now,
			"cons-1", "Sam", "sam@example.com", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN consultants c ON c.id = v.consultant_id")).WithArgs("veh-1").WillReturnRows(rows)

	v, err := NewVehicleRepository(db).FindByID(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, "2021 Ford Transit", v.DisplayName())
	require.NotNil(t, v.Consultant)
	assert.Equal(t, "sam@example.com", v.Consultant.Email)
}

func TestQRCodeIncrementScans(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE qr_codes SET scans = scans + 1")).
		WithArgs("qr-1").
		WillReturnRows(sqlmock.NewRows([]string{"scans"}).AddRow(4))

	n, err := NewQRCodeRepository(db).IncrementScans(context.Background(), "qr-1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE qr_codes")).WillReturnError(sql.ErrNoRows)
	_, err = NewQRCodeRepository(db).IncrementScans(context.Background(), "qr-x")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCampaignList(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns c")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "q", "p", "l"}).
			AddRow("camp-1", "Spring", "", now, now, 2, 1, 7))

	list, err := NewCampaignRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].Leads)
	assert.Equal(t, 2, list[0].QRCodes)
}
