package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/beatbridge/beatbridge-api/internal/core/domain"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
)

type stubJamRepo struct {
	jams   map[string]*domain.JamSession
	nextID int
}

func newStubJamRepo() *stubJamRepo {
	return &stubJamRepo{jams: make(map[string]*domain.JamSession)}
}

func (r *stubJamRepo) Insert(_ context.Context, jam *domain.JamSession) (*domain.JamSession, error) {
	for _, j := range r.jams {
		if j.UserID == jam.UserID && j.Title == jam.Title {
			return nil, domain.ErrJamTitleTaken
		}
	}
	clone := *jam
	r.nextID++
	clone.ID = "j" + strconv.Itoa(r.nextID)
	stored := clone
	r.jams[clone.ID] = &stored
	return &clone, nil
}

func (r *stubJamRepo) FindByID(_ context.Context, id string) (*domain.JamSession, error) {
	if j, ok := r.jams[id]; ok {
		clone := *j
		return &clone, nil
	}
	return nil, domain.ErrJamNotFound
}

func (r *stubJamRepo) ListByUser(_ context.Context, userID string) ([]domain.JamSession, error) {
	var out []domain.JamSession
	for _, j := range r.jams {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJamRepo) ListPublic(_ context.Context) ([]domain.JamSession, error) {
	var out []domain.JamSession
	for _, j := range r.jams {
		if j.IsPublic {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJamRepo) Update(_ context.Context, jam *domain.JamSession) error {
	if _, ok := r.jams[jam.ID]; !ok {
		return domain.ErrJamNotFound
	}
	clone := *jam
	r.jams[jam.ID] = &clone
	return nil
}

func (r *stubJamRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jams[id]; !ok {
		return domain.ErrJamNotFound
	}
	delete(r.jams, id)
	return nil
}

func jamInput(title string, public bool) ports.JamSessionInput {
	return ports.JamSessionInput{
		Title:    title,
		Tempo:    120,
		Pattern:  "x-x-x-x-",
		Genre:    "rock",
		IsPublic: public,
	}
}

func TestJamService_Create_DuplicateTitlePerOwner(t *testing.T) {
	repo := newStubJamRepo()
	svc := NewJamSessionService(repo)

	if _, err := svc.Create(context.Background(), "u1", jamInput("Groove", false)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", jamInput("Groove", false)); !errors.Is(err, domain.ErrJamTitleTaken) {
		t.Fatalf("expected ErrJamTitleTaken, got %v", err)
	}
	// A different owner may reuse the title.
	if _, err := svc.Create(context.Background(), "u2", jamInput("Groove", false)); err != nil {
		t.Fatalf("other owner should reuse title: %v", err)
	}
}

func TestJamService_Create_Validation(t *testing.T) {
	svc := NewJamSessionService(newStubJamRepo())

	_, err := svc.Create(context.Background(), "u1", ports.JamSessionInput{Tempo: -1})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"title", "pattern", "tempo"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected %s in validation fields, got %v", field, ve.Fields)
		}
	}
}

func TestJamService_Update_OwnershipLooksLikeAbsence(t *testing.T) {
	repo := newStubJamRepo()
	svc := NewJamSessionService(repo)
	jam, err := svc.Create(context.Background(), "u1", jamInput("Groove", false))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Update(context.Background(), "intruder", jam.ID, jamInput("Stolen", false)); !errors.Is(err, domain.ErrJamNotFound) {
		t.Fatalf("expected ErrJamNotFound for foreign session, got %v", err)
	}
	if err := svc.Delete(context.Background(), "intruder", jam.ID); !errors.Is(err, domain.ErrJamNotFound) {
		t.Fatalf("expected ErrJamNotFound for foreign delete, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "u1", jam.ID, jamInput("Renamed", true))
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Renamed" || !updated.IsPublic {
		t.Fatalf("unexpected session after update: %+v", updated)
	}
}

func TestJamService_Explore_OnlyPublic(t *testing.T) {
	repo := newStubJamRepo()
	svc := NewJamSessionService(repo)
	if _, err := svc.Create(context.Background(), "u1", jamInput("Private", false)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", jamInput("Public", true)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	public, err := svc.Explore(context.Background())
	if err != nil {
		t.Fatalf("Explore returned error: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Public" {
		t.Fatalf("expected only the public session, got %+v", public)
	}
}
