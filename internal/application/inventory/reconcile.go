package inventory

import (
	"context"

	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

// ReconcileUseCase detecta (y opcionalmente corrige) productos cuyo stock cacheado
// no coincide con la suma de su ledger.
type ReconcileUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, movRepo: movRepo}
}

// Check devuelve los productos desincronizados.
func (uc *ReconcileUseCase) Check(ctx context.Context) ([]repository.StockDrift, error) {
	return uc.movRepo.Drift(ctx)
}

// Fix reescribe el stock cacheado con la suma del ledger. El ledger manda.
func (uc *ReconcileUseCase) Fix(ctx context.Context) ([]repository.StockDrift, error) {
	var fixed []repository.StockDrift
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		drift, err := movRepo.Drift(ctx)
		if err != nil {
			return err
		}
		for _, d := range drift {
			if _, err := productRepo.GetForUpdate(ctx, d.ProductID); err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, d.ProductID, d.LedgerSum); err != nil {
				return err
			}
		}
		fixed = drift
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fixed, nil
}
