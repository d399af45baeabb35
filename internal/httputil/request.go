package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data")
)

// BindData binds the data from the request to the struct passed in the data parameter
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// UUIDFromString parses a UUID path or query parameter.
//
// This is needed because gin does not support binding to uuid.UUID currently.
// Follow https://github.com/gin-gonic/gin/pull/3045 to see when this gets resolved.
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("the specified resource ID is not a valid UUID")
	}

	return u, nil
}

// UIDFromParam parses the numeric transaction UID from a path parameter.
func UIDFromParam(c *gin.Context, param string) (uint64, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, errors.New("the specified transaction UID is not a valid number")
	}

	return parsed, nil
}
