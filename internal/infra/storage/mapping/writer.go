package mapping

import (
	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// writer собирает документ из сущности, начиная с непрочитанных полей исходного документа
type writer struct {
	doc docstore.Document
	src *domain.SourceInfo
}

func newWriter(src *domain.SourceInfo) *writer {
	doc := docstore.Document{}
	if src != nil {
		for k, v := range src.Extra {
			doc[k] = domain.CloneValue(v)
		}
	}
	return &writer{doc: doc, src: src}
}

// name возвращает ключ, под которым поле было прочитано, иначе каноническое имя
func (w *writer) name(f Field) string {
	return w.src.FieldName(f.Canonical)
}

func (w *writer) has(f Field) bool {
	return w.src.HasField(f.Canonical)
}

// put пишет значение в форме хранения:
// неизменённое синтезированное значение не пишется,
// неизменённое исправленное или преобразованное значение пишется в исходном виде
func (w *writer) put(f Field, value any) {
	if w.src != nil {
		if synth, ok := w.src.Synthesized[f.Canonical]; ok && sameValue(synth, value) {
			return
		}
		if c, ok := w.src.Clamped[f.Canonical]; ok && sameValue(c.Applied, value) {
			w.doc[w.name(f)] = domain.CloneValue(c.Raw)
			return
		}
		if c, ok := w.src.Coerced[f.Canonical]; ok && sameValue(c.Applied, value) {
			w.doc[w.name(f)] = domain.CloneValue(c.Raw)
			return
		}
	}
	if value == nil {
		return
	}
	w.doc[w.name(f)] = value
}

// nested возвращает непрочитанные ключи вложенного объекта как основу для записи
func (w *writer) nested(path string) map[string]any {
	out := map[string]any{}
	if w.src != nil {
		for k, v := range w.src.Nested[path] {
			out[k] = domain.CloneValue(v)
		}
	}
	return out
}

func moneyValue(m domain.Money) any {
	return m.Float()
}

func moneyPtrValue(m *domain.Money) any {
	if m == nil {
		return nil
	}
	return m.Float()
}
