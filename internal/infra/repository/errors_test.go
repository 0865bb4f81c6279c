package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/clinicadev/clinic-api/internal/httperr"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	t.Run("record not found", func(t *testing.T) {
		err := classify(fmt.Errorf("first: %w", gorm.ErrRecordNotFound))
		assert.ErrorIs(t, err, httperr.ErrRecordNotFound)
		assert.ErrorIs(t, classify(httperr.ErrRecordNotFound), httperr.ErrRecordNotFound)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: "23505", ConstraintName: "idx_patients_national_id"})

		assert.True(t, httperr.Is(err, httperr.KindStorageFailure))
		assert.True(t, httperr.IsBusiness(err, "unique_violation"))

		var be httperr.BusinessError
		assert.ErrorAs(t, err, &be)
		assert.Equal(t, "idx_patients_national_id", be.Field)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := classify(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"}))
		assert.True(t, httperr.IsBusiness(err, "foreign_key_violation"))
	})

	t.Run("unknown driver error", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := classify(cause)
		assert.True(t, httperr.Is(err, httperr.KindStorageFailure))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("business errors pass through", func(t *testing.T) {
		in := httperr.MissingField("name")
		assert.Equal(t, in, classify(in))
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_x\\`, escapeLike(`50% off_x\`))
	assert.Equal(t, "cardio", escapeLike("cardio"))
}
