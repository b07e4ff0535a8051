package service

import (
	"encoding/json"
	"fmt"
)

// Presenter turns an output DTO into its serialized text representation.
// It must be a pure function: the cached controller stores its result.
type Presenter func(dto interface{}) (string, error)

// JSONPresenter is the default presenter.
func JSONPresenter(dto interface{}) (string, error) {
	data, err := json.Marshal(dto)
	if err != nil {
		return "", fmt.Errorf("failed to serialize representation: %w", err)
	}
	return string(data), nil
}
