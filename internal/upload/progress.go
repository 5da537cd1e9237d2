package upload

const (
	progressStep    = 15
	progressCeiling = 90
	stageSpan       = 13
)

// Captions are shown in order while the upload is processed.
var Captions = []string{
	"🔍 Scanning your resume...",
	"🧠 AI is reading your content...",
	"📊 Extracting work experience...",
	"🎓 Analyzing education history...",
	"⚡ Identifying skills and technologies...",
	"🏆 Processing certifications...",
	"✨ Structuring your profile data...",
}

const CompleteCaption = "🎉 Analysis complete!"

// Advance moves the simulated progress one tick forward. done reports that
// the ceiling was reached and no further ticks are needed.
func Advance(progress, stage int) (int, int, bool) {
	next := progress + progressStep
	if next > progressCeiling {
		return progressCeiling, stage, true
	}
	if next > stage*stageSpan {
		stage++
	}
	return next, stage, false
}

// Caption returns the caption of a stage, holding on the last one.
func Caption(stage int) string {
	if stage < 0 {
		stage = 0
	}
	if stage >= len(Captions) {
		stage = len(Captions) - 1
	}
	return Captions[stage]
}
