package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/testutil"
	"github.com/fastygo/todo/repository/sqlite"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := sqlite.NewUserRepository(testutil.OpenSQLite(t))

	exists, err := users.Exists(ctx, "alice")
	if err != nil || exists {
		t.Fatalf("Exists before create = %v, %v", exists, err)
	}

	created, err := users.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected positive id, got %d", created.ID)
	}

	got, err := users.GetByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByLogin: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := users.GetByLogin(ctx, "Alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("lookup must be case-sensitive, got %v", err)
	}
	if exists, _ := users.Exists(ctx, "alice"); !exists {
		t.Fatal("Exists after create = false")
	}
}

func TestUserRepository_DuplicateLogin(t *testing.T) {
	ctx := context.Background()
	users := sqlite.NewUserRepository(testutil.OpenSQLite(t))

	if _, err := users.Create(ctx, "bob", "h1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := users.Create(ctx, "bob", "h2")
	if !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestTaskRepository_OwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	users := sqlite.NewUserRepository(db)
	tasks := sqlite.NewTaskRepository(db)

	alice, _ := users.Create(ctx, "alice", "h")
	bob, _ := users.Create(ctx, "bob", "h")

	task, err := tasks.Create(ctx, &domain.Task{OwnerID: alice.ID, Title: "Buy milk", Status: domain.TaskPending})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := tasks.Get(ctx, bob.ID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign Get: expected ErrTaskNotFound, got %v", err)
	}
	title := "Hijacked"
	if _, err := tasks.Update(ctx, bob.ID, task.ID, domain.TaskPatch{Title: &title, Status: domain.TaskDone}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign Update: expected ErrTaskNotFound, got %v", err)
	}
	if err := tasks.Delete(ctx, bob.ID, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign Delete: expected ErrTaskNotFound, got %v", err)
	}

	list, err := tasks.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("bob must see an empty non-nil list, got %#v", list)
	}

	got, err := tasks.Get(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if got.Title != "Buy milk" || got.Status != domain.TaskPending {
		t.Fatalf("task changed by foreign calls: %+v", got)
	}
}

func TestTaskRepository_UpdateKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	users := sqlite.NewUserRepository(db)
	tasks := sqlite.NewTaskRepository(db)

	owner, _ := users.Create(ctx, "carol", "h")
	task, err := tasks.Create(ctx, &domain.Task{
		OwnerID:     owner.ID,
		Title:       "Report",
		Description: testutil.StrPtr("draft"),
		Status:      domain.TaskPending,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := tasks.Update(ctx, owner.ID, task.ID, domain.TaskPatch{
		Description: testutil.StrPtr("final"),
		Status:      domain.TaskDone,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Report" {
		t.Fatalf("title = %q, want unchanged", updated.Title)
	}
	if updated.Description == nil || *updated.Description != "final" {
		t.Fatalf("description = %v, want final", updated.Description)
	}
	if updated.Status != domain.TaskDone {
		t.Fatalf("status = %q, want Done", updated.Status)
	}

	again, err := tasks.Update(ctx, owner.ID, task.ID, domain.TaskPatch{Status: domain.TaskPending})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if again.Status != domain.TaskPending || again.Title != "Report" || *again.Description != "final" {
		t.Fatalf("unexpected task after status-only edit: %+v", again)
	}
}

func TestTaskRepository_ListOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	users := sqlite.NewUserRepository(db)
	tasks := sqlite.NewTaskRepository(db)

	owner, _ := users.Create(ctx, "dave", "h")
	var ids []int64
	for _, title := range []string{"one", "two", "three"} {
		task, err := tasks.Create(ctx, &domain.Task{OwnerID: owner.ID, Title: title})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
		if task.Status != domain.TaskPending {
			t.Fatalf("default status = %q", task.Status)
		}
		ids = append(ids, task.ID)
	}

	list, err := tasks.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i, task := range list {
		if task.ID != ids[i] {
			t.Fatalf("list[%d].ID = %d, want %d", i, task.ID, ids[i])
		}
	}

	if err := tasks.Delete(ctx, owner.ID, ids[1]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := tasks.Delete(ctx, owner.ID, ids[1]); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("second Delete: expected ErrTaskNotFound, got %v", err)
	}
	if list, _ := tasks.List(ctx, owner.ID); len(list) != 2 {
		t.Fatalf("len after delete = %d, want 2", len(list))
	}
}

func TestMigrate_ResetDropsRows(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	users := sqlite.NewUserRepository(db)

	if _, err := users.Create(ctx, "erin", "h"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := sqlite.Migrate(db, true); err != nil {
		t.Fatalf("Migrate reset: %v", err)
	}
	if exists, _ := users.Exists(ctx, "erin"); exists {
		t.Fatal("reset must drop existing users")
	}
}
