package task

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/testutil"
	appLogger "github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository/sqlite"
)

func setup(t *testing.T) (*UseCase, int64, int64) {
	t.Helper()
	db := testutil.OpenSQLite(t)
	users := sqlite.NewUserRepository(db)
	alice, err := users.Create(context.Background(), "alice", "h")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := users.Create(context.Background(), "bob", "h")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	return New(sqlite.NewTaskRepository(db), nil), alice.ID, bob.ID
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	uc, alice, _ := setup(t)

	created, err := uc.Create(ctx, alice, NewTask{Title: "Walk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.TaskPending || created.OwnerID != alice {
		t.Fatalf("unexpected task: %+v", created)
	}

	invalid := []NewTask{
		{Title: ""},
		{Title: strings.Repeat("x", 51)},
		{Title: "ok", Description: testutil.StrPtr(strings.Repeat("d", 256))},
		{Title: "ok", Status: "Archived"},
	}
	for _, in := range invalid {
		if _, err := uc.Create(ctx, alice, in); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("Create(%+v): expected invalid error, got %v", in, err)
		}
	}

	if _, err := uc.Create(ctx, alice, NewTask{Title: strings.Repeat("я", 50), Status: domain.TaskDone}); err != nil {
		t.Fatalf("50 runes must be accepted: %v", err)
	}
}

func TestUpdate_RequiresValidStatus(t *testing.T) {
	ctx := context.Background()
	uc, alice, _ := setup(t)

	created, _ := uc.Create(ctx, alice, NewTask{Title: "Walk"})
	if _, err := uc.Update(ctx, alice, created.ID, domain.TaskPatch{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected invalid error for missing status, got %v", err)
	}
	updated, err := uc.Update(ctx, alice, created.ID, domain.TaskPatch{Status: domain.TaskDone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsCompleted() || updated.Title != "Walk" {
		t.Fatalf("unexpected task: %+v", updated)
	}
}

func TestOperations_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	uc, alice, bob := setup(t)

	created, _ := uc.Create(ctx, alice, NewTask{Title: "Private"})

	if _, err := uc.Get(ctx, bob, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("Get: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := uc.Update(ctx, bob, created.ID, domain.TaskPatch{Status: domain.TaskDone}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("Update: expected ErrTaskNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, bob, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("Delete: expected ErrTaskNotFound, got %v", err)
	}

	list, err := uc.List(ctx, alice)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
	if err := uc.Delete(ctx, alice, created.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
}

func TestCreate_LogsRequestFields(t *testing.T) {
	db := testutil.OpenSQLite(t)
	owner, err := sqlite.NewUserRepository(db).Create(context.Background(), "gary", "h")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	var buf bytes.Buffer
	log, err := appLogger.New(appLogger.Config{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	uc := New(sqlite.NewTaskRepository(db), log)

	ctx := appLogger.ContextWithRequestID(context.Background(), "req-42")
	ctx = appLogger.ContextWithUserID(ctx, owner.ID)
	if _, err := uc.Create(ctx, owner.ID, NewTask{Title: "Logged"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "task created" || entry["request_id"] != "req-42" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["user_id"] != float64(owner.ID) {
		t.Fatalf("user_id = %v, want %d", entry["user_id"], owner.ID)
	}
}
