package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// Matriz completa de la máquina de estados de traslados.
func TestTransferStatus_Transiciones(t *testing.T) {
	cases := []struct {
		status     entity.TransferStatus
		canSend    bool
		canReceive bool
		canCancel  bool
		canEdit    bool
	}{
		{entity.TransferBorrador, true, false, true, true},
		{entity.TransferEnviado, false, true, true, false},
		{entity.TransferRecibido, false, false, false, false},
		{entity.TransferCancelado, false, false, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.canSend, tc.status.CanSend())
			assert.Equal(t, tc.canReceive, tc.status.CanReceive())
			assert.Equal(t, tc.canCancel, tc.status.CanCancel())
			assert.Equal(t, tc.canEdit, tc.status.CanEdit())
		})
	}
}

func TestTransfer_DocumentNumber(t *testing.T) {
	tr := &entity.Transfer{Number: 7}
	assert.Equal(t, "TRS-000007", tr.DocumentNumber())

	tr.Number = 123456
	assert.Equal(t, "TRS-123456", tr.DocumentNumber())
}
