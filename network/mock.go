package network

import (
	"context"

	"github.com/bitfsorg/tariscan-go/transaction"
)

// MockOutputSource is a test double for OutputSource.
// OutputsFn must be set before Outputs is called.
type MockOutputSource struct {
	OutputsFn func(ctx context.Context) ([]*transaction.TransactionOutput, error)
}

func (m *MockOutputSource) Outputs(ctx context.Context) ([]*transaction.TransactionOutput, error) {
	return m.OutputsFn(ctx)
}
