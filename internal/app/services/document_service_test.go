package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

func TestDeriveDocumentType(t *testing.T) {
	tests := []struct {
		fileName string
		want     models.DocumentType
	}{
		{"syllabus.pdf", models.DocumentPDF},
		{"Syllabus.PDF", models.DocumentPDF},
		{"notes.docx", models.DocumentDoc},
		{"readme.txt", models.DocumentDoc},
		{"grades.xlsx", models.DocumentXLS},
		{"export.csv", models.DocumentXLS},
		{"slides.pptx", models.DocumentPPT},
		{"schema.png", models.DocumentImage},
		{"photo.JPG", models.DocumentImage},
		{"lecture.mp4", models.DocumentVideo},
		{"podcast.mp3", models.DocumentAudio},
		{"archive.zip", models.DocumentOther},
		{"no-extension", models.DocumentOther},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			require.Equal(t, tt.want, deriveDocumentType(tt.fileName))
		})
	}
}

func TestCreateDocumentFileURLExclusivity(t *testing.T) {
	// The exclusivity check rejects the request before anything is stored,
	// so no repository or storage backend is needed
	svc := &DocumentService{}
	trainer := auth.Actor{Role: models.RoleTrainer, TrainerID: 7}
	url := "https://example.com/syllabus"
	emptyURL := ""

	t.Run("both file and url", func(t *testing.T) {
		file := &multipart.FileHeader{Filename: "syllabus.pdf"}
		req := dto.CreateDocumentRequest{Title: "Syllabus", ExternalURL: &url}

		_, err := svc.CreateDocument(context.Background(), trainer, req, file)
		require.ErrorIs(t, err, apperrors.ErrBothFileAndURL)
	})

	t.Run("neither file nor url", func(t *testing.T) {
		req := dto.CreateDocumentRequest{Title: "Syllabus"}

		_, err := svc.CreateDocument(context.Background(), trainer, req, nil)
		require.ErrorIs(t, err, apperrors.ErrNoFileOrURL)
	})

	t.Run("empty url counts as absent", func(t *testing.T) {
		req := dto.CreateDocumentRequest{Title: "Syllabus", ExternalURL: &emptyURL}

		_, err := svc.CreateDocument(context.Background(), trainer, req, nil)
		require.ErrorIs(t, err, apperrors.ErrNoFileOrURL)
	})
}
