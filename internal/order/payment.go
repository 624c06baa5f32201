package order

import (
	"fmt"
	"math/rand"
	"net/url"
)

// BankAccount identifies the account that receives bank transfers.
type BankAccount struct {
	BankID      string
	AccountNo   string
	AccountName string
	Template    string
}

// NewOrderCode returns a short human readable reference such as DH0427.
func NewOrderCode() string {
	return fmt.Sprintf("DH%04d", rand.Intn(10000))
}

// TransferQRURL builds the VietQR image URL the customer scans to pay by bank transfer.
func TransferQRURL(acct BankAccount, amount int64, orderCode string) string {
	template := acct.Template
	if template == "" {
		template = "compact"
	}

	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("addInfo", orderCode)
	q.Set("accountName", acct.AccountName)

	return fmt.Sprintf("https://img.vietqr.io/image/%s-%s-%s.png?%s",
		url.PathEscape(acct.BankID),
		url.PathEscape(acct.AccountNo),
		url.PathEscape(template),
		q.Encode(),
	)
}
