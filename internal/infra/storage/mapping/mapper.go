package mapping

import (
	"github.com/shopspring/decimal"
)

// Mapper переводит документы хранилища в сущности домена и обратно.
// Маппинг чистый: результат зависит только от входного документа, события уходят в Observer.
type Mapper struct {
	observer Observer
}

func NewMapper(observer Observer) *Mapper {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Mapper{observer: observer}
}

func storeString(s string) any { return s }

func storeInt(i int) any { return int64(i) }

func storeBool(b bool) any { return b }

func storeDecimal(d decimal.Decimal) any {
	f, _ := d.Round(2).Float64()
	return f
}
