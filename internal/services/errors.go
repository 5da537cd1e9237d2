package services

import (
	"errors"

	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

var (
	ErrNotFound             = repositories.ErrNotFound
	ErrRevisionConflict     = repositories.ErrRevisionConflict
	ErrAuthRequired         = errors.New("authentication required")
	ErrInvalidFile          = errors.New("invalid resume file")
	ErrNoResumeText         = errors.New("resume has no extracted text")
	ErrCourseLoadFailed     = errors.New("failed to load course content")
	ErrGenerationInProgress = errors.New("content generation already in progress")
	ErrGenerationFailed     = errors.New("content generation failed")
	ErrUnsupportedContent   = errors.New("unsupported content type")
	ErrAlreadyAnswered      = errors.New("question already answered")
	ErrInvalidAnswer        = errors.New("answer is not one of the options")
)
