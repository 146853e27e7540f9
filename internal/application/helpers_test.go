package application

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"path"
	"testing"

	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/internal/storage"
	"github.com/linskybing/projectsign/internal/testutils"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const quotePayload = `{
	"items": [{"id":"1","description":"Tiling","quantity":2,"unit":"m2","unit_price":100,"total":200}],
	"subtotal": 200, "vat_rate": 0.17, "vat_amount": 34, "total": 234,
	"valid_until": "2026-12-31"
}`

const completionPayload = `{
	"site_name": "Herzl 12",
	"work_date": "2026-10-01",
	"satisfaction_overall": 5, "site_conduct": 5, "work_quality": 5, "appearance": 5, "worker_behavior": 5,
	"legal_disclaimer_accepted": true
}`

type testEnv struct {
	db      *gorm.DB
	repos   *repository.Repos
	blobs   *storage.Memory
	svc     *Services
	owner   types.Actor
	project *project.Project
}

// newTestEnv wires the services against a private sqlite database and an
// in-memory blob store. Audit writes are discarded.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutils.NewSQLiteDB(t))
}

func newTestEnvWithDB(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()

	oldAudit := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(repository.AuditRepo, utils.AuditEntry) {}
	t.Cleanup(func() { utils.LogAuditWithConsole = oldAudit })

	repos := repository.NewRepositories(db)
	blobs := storage.NewMemory("https://blobs.test/signatures")
	svc := New(repos, Dependencies{Blobs: blobs})

	owner := types.Actor{UserID: 1, IP: "10.0.0.1", UserAgent: "owner-test"}
	p, err := svc.Project.CreateProject(owner, project.CreateProjectDTO{
		Name:    "Kitchen",
		Contact: &project.ContactInput{Name: "Dana Cohen"},
	})
	require.NoError(t, err)

	return &testEnv{db: db, repos: repos, blobs: blobs, svc: svc, owner: owner, project: p}
}

func (e *testEnv) createForm(t *testing.T, typ form.Type, data string) *form.Form {
	t.Helper()
	f, err := e.svc.Form.CreateForm(e.owner, e.project.ID, form.CreateFormDTO{Type: typ, Data: []byte(data)})
	require.NoError(t, err)
	return f
}

func (e *testEnv) mint(t *testing.T, formID string) string {
	t.Helper()
	res, err := e.svc.Dispatch.Send(t.Context(), e.owner, formID, form.SendFormDTO{Method: form.ChannelLink})
	require.NoError(t, err)
	return path.Base(res.SigningURL)
}

// signatureDataURI draws a scribble large enough to pass the blank check.
func signatureDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 200, 80))
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		img.Set(rng.Intn(200), rng.Intn(80), color.NRGBA{A: 255, R: uint8(rng.Intn(60))})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func blankDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 200, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
