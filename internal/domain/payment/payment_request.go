package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency 通貨が指定されなかった場合の通貨
const DefaultCurrency = "usd"

// MaxMinorUnits 1件あたりの上限金額（補助通貨単位、Stripeの8桁上限）
const MaxMinorUnits int64 = 99_999_999

const (
	// maxIntegerDigits MaxMinorUnitsを主通貨単位にしたときの整数部の桁数
	maxIntegerDigits = 6
	// minIntegerDigits これより小さい桁の金額は補助通貨単位でゼロに丸まる
	minIntegerDigits = -2
)

var minorUnitFactor = decimal.NewFromInt(100)

// PaymentRequest 決済リクエスト（金額は主通貨単位）
type PaymentRequest struct {
	amount     decimal.Decimal
	minorUnits int64
	currency   string
}

// NewPaymentRequest 新しいPaymentRequestを作成
// amountがnilの場合は金額未指定として扱う。currencyが空の場合はdefaultCurrencyを使用する
func NewPaymentRequest(amount *decimal.Decimal, currency, defaultCurrency string) (*PaymentRequest, error) {
	if amount == nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	minorUnits, err := ToMinorUnits(*amount)
	if err != nil {
		return nil, err
	}

	if currency == "" {
		currency = defaultCurrency
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if !isCurrencyCode(currency) {
		return nil, ErrInvalidCurrency
	}

	return &PaymentRequest{
		amount:     *amount,
		minorUnits: minorUnits,
		currency:   currency,
	}, nil
}

// Amount 主通貨単位の金額を返す
func (r *PaymentRequest) Amount() decimal.Decimal {
	return r.amount
}

// Currency 小文字の通貨コードを返す
func (r *PaymentRequest) Currency() string {
	return r.currency
}

// MinorUnits 補助通貨単位の金額を返す
func (r *PaymentRequest) MinorUnits() int64 {
	return r.minorUnits
}

// ToMinorUnits 主通貨単位の金額を補助通貨単位へ変換する（round(amount * 100)）
// 結果が1以上MaxMinorUnits以下にならない場合はErrInvalidAmountを返す
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	// 丸めは指数の大きさに比例して重くなるため、桁数の確認を先に行う
	intDigits := amount.NumDigits() + int(amount.Exponent())
	if intDigits > maxIntegerDigits || intDigits < minIntegerDigits {
		return 0, ErrInvalidAmount
	}

	rounded := amount.Mul(minorUnitFactor).Round(0)
	if !rounded.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}
	minor := rounded.IntPart()
	if minor <= 0 || minor > MaxMinorUnits {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
