// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error. The segment
// after the last dot is the reason used by the Is* classifiers.
type Code string

const (
	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigParseInvalidFormat   Code = "config.parse.invalid_format"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"

	CodeStoreBedNotFound        Code = "store.bed.get.not_found"
	CodeStoreBedConflict        Code = "store.bed.create.conflict"
	CodeStoreDatabaseFailure    Code = "store.database.failure"
	CodeStoreBackendUnsupported Code = "store.backend.unsupported"

	CodeObjectStoreUnavailable Code = "objstore.client.unavailable"
	CodeObjectUploadFailure    Code = "objstore.upload.failure"
	CodeObjectDeleteFailure    Code = "objstore.delete.failure"
	CodeAssetSourceMissing     Code = "asset.upload.source_missing"
	CodeAssetCategoryInvalid   Code = "asset.category.invalid_input"

	CodeVectorIndexUnavailable Code = "vector.client.unavailable"
	CodeVectorUpsertFailure    Code = "vector.upsert.failure"
	CodeVectorQueryFailure     Code = "vector.query.failure"

	CodeMetadataUnavailable     Code = "metadata.client.unavailable"
	CodeMetadataPublishFailure  Code = "metadata.publish.failure"
	CodeMetadataFetchFailure    Code = "metadata.fetch.failure"
	CodeMetadataSampleNotFound  Code = "metadata.sample.get.not_found"

	CodeEmbedModelUnavailable Code = "embed.model.unavailable"
	CodeEmbedEncodeFailure    Code = "embed.encode.failure"
	CodeEmbedInputInvalid     Code = "embed.encode.invalid_input"

	CodeRecordValidateInvalid Code = "record.validate.invalid_input"

	CodeCLISetupFailure Code = "cli.setup.failure"
	CodeCLIInputInvalid Code = "cli.input.invalid_input"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldBedID(value string) Attr {
	return Field("bed_id", value)
}

func FieldBackend(value string) Attr {
	return Field("backend", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(string(code)).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(string(code)).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(string(code)).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(string(code)).Wrapf(err, format, args...)
}

// With adds structured fields to an existing error chain.
func With(err error, fields ...Attr) error {
	if err == nil {
		return nil
	}

	builder := oops.With(flatten(fields)...)
	if code := CodeOf(err); code != "" {
		builder = builder.Code(string(code))
	}
	return builder.Wrap(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	switch code := oopsErr.Code().(type) {
	case Code:
		return code
	case string:
		return Code(code)
	case nil:
		return ""
	default:
		return Code(fmt.Sprintf("%v", code))
	}
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// IsNotFound reports whether err identifies a missing catalog record.
func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

// IsUnavailable reports whether err comes from a backing-store handle
// that failed to construct or is absent in a degraded context.
func IsUnavailable(err error) bool {
	return reason(CodeOf(err)) == "unavailable"
}

func IsInvalidInput(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid_input" || r == "invalid_value" || r == "invalid_format"
}

func IsConflict(err error) bool {
	return reason(CodeOf(err)) == "conflict"
}

// IsSourceMissing reports whether an asset upload failed because the
// local source file does not exist.
func IsSourceMissing(err error) bool {
	return reason(CodeOf(err)) == "source_missing"
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
