package framework

// StageLogger receives progress notifications while a scenario runs. The
// console implementation lives in the main package; a null implementation
// is used when no logger is provided.
type StageLogger interface {
	StageStarted(id StageID)
	StageError(id StageID, err error)
	StageFinished(id StageID, failed bool, debugOutput CapturedOutput)
	StageSkipped(id StageID, reason string)
}

type nullStageLogger struct{}

func (n nullStageLogger) StageStarted(StageID)                        {}
func (n nullStageLogger) StageError(StageID, error)                   {}
func (n nullStageLogger) StageFinished(StageID, bool, CapturedOutput) {}
func (n nullStageLogger) StageSkipped(StageID, string)                {}
