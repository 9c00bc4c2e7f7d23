package workflow

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

func TestUploadResumeWithoutFileSendsNothing(t *testing.T) {
	uploader := &stubUploader{}
	ctrl := NewUploadController(uploader, zap.NewNop())

	require.ErrorIs(t, ctrl.UploadResume(), ErrNoFileSelected)
	require.Equal(t, 0, uploader.uploadCalls)
	require.Equal(t, StatusNone, ctrl.Status().Kind)
}

func TestUploadResumeSuccessClearsSelection(t *testing.T) {
	uploader := &stubUploader{
		candidate: &jobmatcher.Candidate{ID: 3, Name: "Jane Doe"},
	}
	ctrl := NewUploadController(uploader, zap.NewNop())
	ctrl.SelectFile("resume.pdf", strings.NewReader("%PDF-1.4"))

	require.NoError(t, ctrl.UploadResume())

	require.Equal(t, "resume.pdf", uploader.gotFilename)
	require.Empty(t, ctrl.SelectedFile())
	require.Equal(t, StatusSuccess, ctrl.Status().Kind)
	require.Equal(t, "Resume uploaded successfully! Candidate: Jane Doe", ctrl.Status().Text)
}

func TestUploadResumeFailureKeepsSelection(t *testing.T) {
	uploader := &stubUploader{
		uploadErr: apiErr(http.StatusUnprocessableEntity, "Could not extract text from resume"),
	}
	ctrl := NewUploadController(uploader, zap.NewNop())
	ctrl.SelectFile("resume.pdf", strings.NewReader("garbled"))

	require.Error(t, ctrl.UploadResume())

	// The file stays selected for a retry.
	require.Equal(t, "resume.pdf", ctrl.SelectedFile())
	require.Equal(t, StatusError, ctrl.Status().Kind)
	require.Equal(t, "Could not extract text from resume", ctrl.Status().Text)
	require.False(t, ctrl.Loading())
}

func TestJobFormDefaults(t *testing.T) {
	ctrl := NewUploadController(&stubUploader{}, zap.NewNop())

	form := ctrl.JobForm()
	require.Equal(t, DefaultJobLocation, form.Location)
	require.Equal(t, DefaultJobType, form.JobType)

	// Clearing the optional fields brings the defaults back.
	ctrl.SetJobForm(jobmatcher.JobSubmission{Title: "Backend Engineer"})
	form = ctrl.JobForm()
	require.Equal(t, "Backend Engineer", form.Title)
	require.Equal(t, DefaultJobLocation, form.Location)
	require.Equal(t, DefaultJobType, form.JobType)
}

func TestSubmitJobValidatesBeforeDispatch(t *testing.T) {
	uploader := &stubUploader{}
	ctrl := NewUploadController(uploader, zap.NewNop())

	ctrl.SetJobForm(jobmatcher.JobSubmission{Title: "Backend Engineer"})
	require.Error(t, ctrl.SubmitJob())
	require.Equal(t, 0, uploader.createCalls)
}

func TestSubmitJobSuccessResetsForm(t *testing.T) {
	uploader := &stubUploader{
		job: &jobmatcher.Job{ID: 5, Title: "Backend Engineer", Company: "Acme"},
	}
	ctrl := NewUploadController(uploader, zap.NewNop())
	ctrl.SetJobForm(jobmatcher.JobSubmission{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build services in Go",
		Location:    "Berlin",
	})

	require.NoError(t, ctrl.SubmitJob())

	require.Equal(t, "Berlin", uploader.gotSubmission.Location)
	require.Equal(t, StatusSuccess, ctrl.Status().Kind)
	require.Equal(t, "Job posted successfully! Backend Engineer at Acme", ctrl.Status().Text)

	form := ctrl.JobForm()
	require.Empty(t, form.Title)
	require.Equal(t, DefaultJobLocation, form.Location)
	require.Equal(t, DefaultJobType, form.JobType)
}

func TestSubmitJobFailureRetainsForm(t *testing.T) {
	uploader := &stubUploader{
		createErr: apiErr(http.StatusInternalServerError, ""),
	}
	ctrl := NewUploadController(uploader, zap.NewNop())
	ctrl.SetJobForm(jobmatcher.JobSubmission{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build services in Go",
	})

	require.Error(t, ctrl.SubmitJob())

	require.Equal(t, StatusError, ctrl.Status().Kind)
	require.Equal(t, "Failed to post job", ctrl.Status().Text)
	require.Equal(t, "Backend Engineer", ctrl.JobForm().Title)
}

func TestResumeAndJobFlowsShareOnlyStatus(t *testing.T) {
	uploader := &stubUploader{
		uploadErr: apiErr(http.StatusUnprocessableEntity, "Unsupported file type"),
	}
	ctrl := NewUploadController(uploader, zap.NewNop())

	ctrl.SetJobForm(jobmatcher.JobSubmission{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build services in Go",
	})
	ctrl.SelectFile("resume.txt", strings.NewReader("plain text"))

	require.Error(t, ctrl.UploadResume())

	// A failed resume upload never disturbs the job form.
	require.Equal(t, "Backend Engineer", ctrl.JobForm().Title)
	require.Equal(t, StatusError, ctrl.Status().Kind)
}
