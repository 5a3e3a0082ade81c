package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrRequestBodyEmpty is returned when a request body is required but missing.
var ErrRequestBodyEmpty = errors.New("the request body must not be empty")

// ErrInvalidBody is returned for un-parseable request bodies.
var ErrInvalidBody = errors.New("the body of your request contains invalid or un-parseable data")

// BindData binds the JSON body of the request to the struct passed in.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetBodyFields returns the names of the fields of resource that are
// present in the request body. Partial updates use this to only write
// the fields a client actually sent.
//
// This function reads and restores the request body, it must always be
// called before BindData.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(body) == 0 {
		return nil, ErrRequestBodyEmpty
	}

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return nil, ErrInvalidBody
	}

	var bodyFields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		param := val.Type().Field(i).Tag.Get("json")
		if _, ok := mapBody[param]; ok {
			bodyFields = append(bodyFields, val.Type().Field(i).Name)
		}
	}

	return bodyFields, nil
}

// UUIDFromString parses an ID from a path or query parameter.
func UUIDFromString(s string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("the specified resource ID is not a valid UUID")
	}

	return parsed, nil
}
