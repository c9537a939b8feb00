package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thestorykeeper/bookkeeper/internal/testsupport"
)

// TestRecordPayment 凭证落账与回调重试幂等
func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	repo := testsupport.NewPaymentRepo()
	record := NewRecordPaymentUseCase(repo)

	req := RecordPaymentRequest{
		ProductID:       "000000000000000000000001",
		BuyerEmail:      "buyer@example.com",
		TransactionID:   "txn_abc",
		PaymentIntentID: "pi_abc",
		Amount:          1200,
	}

	first, err := record.Execute(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "txn_abc", first.TransactionID)

	// 同交易号重试返回已落账凭证,不追加
	again, err := record.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, repo.Count())

	// 不同交易号(退款、二次收款)仍追加
	req.TransactionID = "txn_def"
	_, err = record.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Count())
}
