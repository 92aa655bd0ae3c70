package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"isp392_backend/internals/features/orders/invoices/model"
)

var SnapClient snap.Client

// InitMidtrans sets up the Snap client with the configured server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken creates a Snap payment token for an invoice.
func GenerateSnapToken(inv model.InvoiceModel, customerName string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  inv.InvoiceOrderID,
			GrossAmt: inv.InvoiceTotal,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
