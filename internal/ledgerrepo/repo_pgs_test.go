//go:build integration

package ledgerrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/lib/pq"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/internal/ledgerrepo"
	"github.com/go-petr/point-bank/pkg/configpkg"
	"github.com/go-petr/point-bank/pkg/dbpkg"
	"github.com/go-petr/point-bank/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestAppend(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := ledgerrepo.NewRepoPGS(tx)
	userID := randompkg.UserID()
	createdAt := time.Now().Truncate(time.Microsecond).UTC()

	got, err := repo.Append(context.Background(), userID, 100, domain.KindCharge, createdAt)
	if err != nil {
		t.Fatalf("repo.Append(ctx, %d, 100, CHARGE, %v) returned error: %v", userID, createdAt, err)
	}

	if got.ID == 0 {
		t.Error("repo.Append did not assign an id")
	}

	want := domain.Transaction{
		ID:        got.ID,
		UserID:    userID,
		Amount:    100,
		Kind:      domain.KindCharge,
		CreatedAt: createdAt,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("repo.Append mismatch (-want +got):\n%s", diff)
	}
}

func TestListByUser(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := ledgerrepo.NewRepoPGS(tx)
	userID := randompkg.UserID()

	got, err := repo.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("repo.ListByUser(ctx, %d) returned error: %v", userID, err)
	}

	if len(got) != 0 {
		t.Errorf("repo.ListByUser returned %d records for fresh user, want 0", len(got))
	}

	want := []domain.Transaction{}

	for _, amount := range []int64{100, 200, 300} {
		record, err := repo.Append(context.Background(), userID, amount, domain.KindCharge, time.Now().Truncate(time.Microsecond).UTC())
		if err != nil {
			t.Fatalf("repo.Append(ctx, %d, %d, CHARGE) returned error: %v", userID, amount, err)
		}

		want = append(want, record)
	}

	got, err = repo.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("repo.ListByUser(ctx, %d) returned error: %v", userID, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("repo.ListByUser mismatch (-want +got):\n%s", diff)
	}
}
