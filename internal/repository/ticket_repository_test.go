package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/aastha-chatbot/internal/domain"
)

func TestTicketRepositoryWithoutPool(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	_, err := repo.LookupStatus(ctx, "TKT-12345678")
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)

	_, err = repo.ListByPhone(ctx, "9876543210")
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)

	_, err = repo.Stats(ctx)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)

	_, err = repo.ChannelStats(ctx)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)

	assert.ErrorIs(t, repo.Create(ctx, &domain.TicketRecord{}), ErrDatabaseUnavailable)
}

func TestNewTicketCode(t *testing.T) {
	code := NewTicketCode()
	assert.Regexp(t, regexp.MustCompile(`^TKT-[0-9a-f]{8}$`), code)
	assert.NotEqual(t, code, NewTicketCode())
}

func TestDescribeAppendsClassification(t *testing.T) {
	module, section := "Payroll", "Arrears"
	ticket := &domain.TicketRecord{Description: "Salary not credited", Module: &module, Section: &section}

	assert.Equal(t, "Salary not credited\n\nModule: Payroll\nSection: Arrears", describe(ticket))
	assert.Equal(t, "plain", describe(&domain.TicketRecord{Description: "plain"}))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `TKT\_1\%`, escapeLike("TKT_1%"))
}
