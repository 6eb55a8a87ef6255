package sheets

import (
	"context"
	"sync"
)

type update struct {
	Range  string
	Values [][]string
}

// fakeService is an in-memory Service.
type fakeService struct {
	mu        sync.Mutex
	values    [][]string
	valuesErr error
	// failRange makes Update fail for that range
	failRange string
	updates   []update
	locators  []Locator
}

func (f *fakeService) Values(_ context.Context, loc Locator) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locators = append(f.locators, loc)
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return f.values, nil
}

func (f *fakeService) Update(_ context.Context, loc Locator, cellRange string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locators = append(f.locators, loc)
	if cellRange == f.failRange {
		return errWriteFailed
	}
	f.updates = append(f.updates, update{Range: cellRange, Values: values})
	return nil
}
