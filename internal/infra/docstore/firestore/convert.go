package firestore

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// fromNative заменяет типы клиента на нейтральные docstore.Reference и docstore.GeoPoint
func fromNative(data map[string]any) docstore.Document {
	out, _ := convertFrom(data).(map[string]any)
	return docstore.Document(out)
}

func convertFrom(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = convertFrom(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = convertFrom(item)
		}
		return out
	case *firestore.DocumentRef:
		if t == nil {
			return nil
		}
		return referenceOf(t)
	case *latlng.LatLng:
		if t == nil {
			return nil
		}
		return docstore.GeoPoint{Latitude: t.GetLatitude(), Longitude: t.GetLongitude()}
	default:
		return v
	}
}

func referenceOf(ref *firestore.DocumentRef) docstore.Reference {
	if ref.Parent != nil {
		return docstore.NewReference(ref.Parent.ID, ref.ID)
	}
	return docstore.ParseReference(ref.Path)
}

// toNative выполняет обратное преобразование перед записью
func (s *Store) toNative(v any) any {
	switch t := v.(type) {
	case docstore.Document:
		return s.toNative(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = s.toNative(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = s.toNative(item)
		}
		return out
	case docstore.Reference:
		if ref := s.client.Doc(t.Path); ref != nil {
			return ref
		}
		return t.Path
	case docstore.GeoPoint:
		return &latlng.LatLng{Latitude: t.Latitude, Longitude: t.Longitude}
	default:
		return v
	}
}
