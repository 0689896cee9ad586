package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/docai/flow-studio/internal/errors"
)

func TestAIWriterService_Generate(t *testing.T) {
	svc := NewAIWriterService(AIWriterServiceOptions{Delay: time.Millisecond})

	result, err := svc.Generate(context.Background(), GenerateInput{
		Prompt:       "Write a cover letter for a Senior Software Engineer position",
		DocumentType: "cover-letter",
	})
	require.NoError(t, err)
	assert.Equal(t, "cover-letter", result.DocumentType)
	assert.True(t, strings.HasPrefix(result.Content, "Dear Hiring Manager,"))
}

func TestAIWriterService_GenerateAllTypes(t *testing.T) {
	svc := NewAIWriterService(AIWriterServiceOptions{Delay: time.Millisecond})

	for _, docType := range DocumentTypes() {
		result, err := svc.Generate(context.Background(), GenerateInput{
			Prompt:       "anything",
			DocumentType: docType,
		})
		require.NoError(t, err, docType)
		assert.NotEmpty(t, result.Content, docType)
	}
}

func TestAIWriterService_GenerateValidation(t *testing.T) {
	svc := NewAIWriterService(AIWriterServiceOptions{Delay: time.Millisecond})
	ctx := context.Background()

	_, err := svc.Generate(ctx, GenerateInput{Prompt: "  ", DocumentType: "cover-letter"})
	require.Error(t, err)
	assert.Equal(t, "prompt", apperrors.FieldOf(err))

	_, err = svc.Generate(ctx, GenerateInput{Prompt: "hello", DocumentType: "novel"})
	require.Error(t, err)
	assert.Equal(t, "document_type", apperrors.FieldOf(err))
}

func TestAIWriterService_GenerateCanceled(t *testing.T) {
	svc := NewAIWriterService(AIWriterServiceOptions{Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := svc.Generate(ctx, GenerateInput{Prompt: "hello", DocumentType: "email"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAIWriterService_DefaultDelay(t *testing.T) {
	svc := NewAIWriterService(AIWriterServiceOptions{})
	assert.Equal(t, DefaultGenerationDelay, svc.delay)
}
