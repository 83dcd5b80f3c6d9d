package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const maxJSONBody = 1 << 20

// DecodeJSON читает тело запроса; неизвестные поля: ошибка.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadParams, err)
	}
	return nil
}

// PathID: положительный int64 из path-параметра.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", domain.ErrBadParams, name)
	}
	return id, nil
}

// Page: limit/offset из query; пустые значения дают 0, нормализует сервис.
func Page(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if limit, err = intParam(q.Get("limit")); err != nil {
		return 0, 0, err
	}
	if offset, err = intParam(q.Get("offset")); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad number %q", domain.ErrBadParams, s)
	}
	return n, nil
}
