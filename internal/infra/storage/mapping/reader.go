package mapping

import (
	"fmt"
	"reflect"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// opt is one located and coerced document value
type opt[T any] struct {
	Value T
	Key   string
	Raw   any
	OK    bool
}

type problem struct {
	kind  Kind
	field string
	err   error
}

// readState общее состояние чтения одного документа, включая вложенные объекты
type readState struct {
	entity   string
	id       string
	source   *domain.SourceInfo
	events   []Event
	problems []problem
}

// reader читает один объект документа. Вложенные объекты читаются своим reader с общим состоянием.
type reader struct {
	state *readState
	path  string
	doc   map[string]any
	used  map[string]bool
}

func newReader(entity, id string, doc map[string]any) *reader {
	return &reader{
		state: &readState{entity: entity, id: id, source: domain.NewSourceInfo()},
		doc:   doc,
		used:  map[string]bool{},
	}
}

func (r *reader) nested(path string, doc map[string]any) *reader {
	return &reader{state: r.state, path: path, doc: doc, used: map[string]bool{}}
}

func (r *reader) topLevel() bool {
	return r.path == ""
}

// find возвращает первое непустое значение по порядку имён и помечает ключ как прочитанный
func (r *reader) find(f Field) (string, any, bool) {
	key, raw, ok := r.peek(f)
	if !ok {
		return "", nil, false
	}
	r.used[key] = true
	if r.topLevel() {
		r.state.source.Fields[f.Canonical] = key
	}
	return key, raw, true
}

// peek как find, но ключ остаётся в непрочитанных полях и пишется обратно как есть
func (r *reader) peek(f Field) (string, any, bool) {
	for _, name := range f.Names() {
		if raw, ok := r.doc[name]; ok && raw != nil {
			return name, raw, true
		}
	}
	return "", nil, false
}

func readField[T any](r *reader, f Field, conv func(any) (T, string, error), store func(T) any) opt[T] {
	key, raw, ok := r.find(f)
	if !ok {
		return opt[T]{}
	}
	v, note, err := conv(raw)
	if err != nil {
		r.fail(KindTypeCoercionFailed, key, err)
		return opt[T]{Key: key, Raw: raw}
	}
	if note != "" {
		r.coerce(f, key, raw, storeOrNil(store, v), note)
	}
	return opt[T]{Value: v, Key: key, Raw: raw, OK: true}
}

// peekField читает значение, не забирая ключ из документа
func peekField[T any](r *reader, f Field, conv func(any) (T, string, error)) opt[T] {
	key, raw, ok := r.peek(f)
	if !ok {
		return opt[T]{}
	}
	v, _, err := conv(raw)
	if err != nil {
		r.fail(KindTypeCoercionFailed, key, err)
		return opt[T]{Key: key, Raw: raw}
	}
	return opt[T]{Value: v, Key: key, Raw: raw, OK: true}
}

func storeOrNil[T any](store func(T) any, v T) any {
	if store == nil {
		return nil
	}
	return store(v)
}

func (r *reader) fieldPath(key string) string {
	return joinPath(r.path, key)
}

func (r *reader) event(kind EventKind, key string, raw any, resolution string) {
	r.state.events = append(r.state.events, Event{
		DocumentID: r.state.id,
		EntityType: r.state.entity,
		Field:      r.fieldPath(key),
		RawValue:   summarize(raw),
		Resolution: resolution,
		Kind:       kind,
	})
}

// coerce фиксирует преобразование типа. applied == nil означает, что обратная запись не нужна.
func (r *reader) coerce(f Field, key string, raw, applied any, resolution string) {
	r.event(EventCoercion, key, raw, resolution)
	if r.topLevel() && applied != nil {
		r.state.source.Coerced[f.Canonical] = domain.Clamp{Raw: domain.CloneValue(raw), Applied: applied}
	}
}

func (r *reader) clamp(f Field, key string, raw, applied any, resolution string) {
	r.event(EventClamp, key, raw, resolution)
	if r.topLevel() {
		r.state.source.Clamped[f.Canonical] = domain.Clamp{Raw: domain.CloneValue(raw), Applied: applied}
	}
}

// synthesize фиксирует значение, которого в документе не было
func (r *reader) synthesize(f Field, applied any, kind EventKind, resolution string) {
	r.event(kind, f.Canonical, nil, resolution)
	if r.topLevel() {
		r.state.source.Synthesized[f.Canonical] = applied
	}
}

// absent запоминает пустое значение необязательного поля без события
func (r *reader) absent(f Field, applied any) {
	if r.topLevel() {
		r.state.source.Synthesized[f.Canonical] = applied
	}
}

func (r *reader) fail(kind Kind, key string, err error) {
	r.state.problems = append(r.state.problems, problem{kind: kind, field: r.fieldPath(key), err: err})
}

// leftovers возвращает ключи, которые не прочитал ни один маппинг
func (r *reader) leftovers() map[string]any {
	out := map[string]any{}
	for k, v := range r.doc {
		if !r.used[k] {
			out[k] = domain.CloneValue(v)
		}
	}
	return out
}

// keepNested сохраняет непрочитанные ключи вложенного объекта для обратной записи
func (r *reader) keepNested() {
	if rest := r.leftovers(); len(rest) > 0 {
		r.state.source.Nested[r.path] = rest
	}
}

func (r *reader) failed() bool {
	return len(r.state.problems) > 0
}

// err собирает MappingError по виду первой проблемы
func (r *reader) err() error {
	if len(r.state.problems) == 0 {
		return nil
	}
	first := r.state.problems[0]
	merr := &MappingError{
		DocumentID: r.state.id,
		Entity:     r.state.entity,
		Kind:       first.kind,
		Err:        first.err,
	}
	for _, p := range r.state.problems {
		if p.kind == first.kind {
			merr.Fields = append(merr.Fields, p.field)
		}
	}
	return merr
}

// finish переносит непрочитанные поля в Extra и отдаёт события наблюдателю
func (r *reader) finish(obs Observer) *domain.SourceInfo {
	r.state.source.Extra = r.leftovers()
	for _, e := range r.state.events {
		obs.Observe(e)
	}
	return r.state.source
}

// sameValue сравнивает значения в форме хранения
func sameValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func missing(f Field) error {
	return fmt.Errorf("%s is required", f.Canonical)
}
