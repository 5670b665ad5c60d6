package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("test_field", "test message", "test_value")

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message to be 'test message', got '%s'", err.Message)
	}

	if err.Value != "test_value" {
		t.Errorf("Expected value to be 'test_value', got '%v'", err.Value)
	}

	// Test Error method
	expected := "validation error on field 'test_field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("field1", "message1", nil))
	expected := "validation failed: field1 message1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("field2", "message2", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("test_field", "test message", "required", "test_value")

	if err.Rule != "required" {
		t.Errorf("Expected rule to be 'required', got '%s'", err.Rule)
	}

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}
}

func TestValidationErrorsFieldsAndMessages(t *testing.T) {
	errs := ValidationErrors{
		*NewValidationError("formName", "is required", ""),
		*NewValidationError("questions", "must contain at least 1 item", 0),
	}

	fields := errs.Fields()
	if len(fields) != 2 || fields[0] != "formName" || fields[1] != "questions" {
		t.Errorf("Unexpected fields: %v", fields)
	}

	messages := errs.Messages()
	if messages[0] != "formName is required" {
		t.Errorf("Expected 'formName is required', got '%s'", messages[0])
	}

	user := errs.UserMessages()
	if len(user) != 2 || user[0] != "is required" || user[1] != "must contain at least 1 item" {
		t.Errorf("Unexpected user messages: %v", user)
	}
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Count int    `validate:"min=1"`
	}

	err := validator.New().Struct(payload{})
	errs := ToValidationErrors(err)

	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
	if errs[0].Rule != "required" || errs[0].Message != "is required" {
		t.Errorf("Unexpected first error: %+v", errs[0])
	}
	if errs[1].Message != "must be at least 1" {
		t.Errorf("Expected 'must be at least 1', got '%s'", errs[1].Message)
	}

	if got := ToValidationErrors(nil); len(got) != 0 {
		t.Errorf("Expected no errors for nil input, got %d", len(got))
	}
}
