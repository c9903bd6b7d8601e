package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON строго разбирает JSON документ в v: неизвестные поля, данные после документа
// и повторяющиеся ключи верхнего уровня считаются ошибкой
func DecodeJSON(payload []byte, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after document")
	}

	return checkUniqueKeys(payload)
}

func checkUniqueKeys(payload []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(payload))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('{') {
		return nil
	}

	seen := make(map[string]struct{})
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", token)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = struct{}{}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return err
		}
	}
	return nil
}
