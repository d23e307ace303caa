package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// alwaysExcluded never leave the process, whatever the caller asks for.
var alwaysExcluded = []string{"password", "password_hash"}

// Present renders v as a JSON document without the excluded keys.
func Present(v interface{}, exclude ...string) (fiber.Map, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	doc := fiber.Map{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("present %T: %w", v, err)
	}
	for _, key := range exclude {
		delete(doc, key)
	}
	for _, key := range alwaysExcluded {
		delete(doc, key)
	}
	return doc, nil
}

// PresentList applies Present to every element of a slice.
func PresentList[T any](items []T, exclude ...string) ([]fiber.Map, error) {
	docs := make([]fiber.Map, 0, len(items))
	for i := range items {
		doc, err := Present(&items[i], exclude...)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
