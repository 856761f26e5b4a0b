package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleScriptString(t *testing.T) {
	assert.Equal(t, `"plain"`, AppleScriptString("plain"))
	assert.Equal(t, `"say \"hi\""`, AppleScriptString(`say "hi"`))
	assert.Equal(t, `"C:\\dir"`, AppleScriptString(`C:\dir`))
}

func TestShowAlert(t *testing.T) {
	runner := &FakeRunner{}
	err := ShowAlert(context.Background(), runner, "Error", `GoToShellHelper.app not found in "bundle".`, AlertCritical)
	require.NoError(t, err)

	calls := runner.CallsTo("osascript")
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Async, "alerts block")
	assert.Equal(t, "-e", calls[0].Args[0])
	assert.Equal(t,
		`display alert "Error" message "GoToShellHelper.app not found in \"bundle\"." as critical buttons {"OK"} default button 1`,
		calls[0].Args[1])
}

func TestShowAlertFailure(t *testing.T) {
	runner := (&FakeRunner{}).On("osascript", nil, FakeResponse{Output: Output{ExitCode: 1}, Err: errors.New("exit 1")})
	assert.Error(t, ShowAlert(context.Background(), runner, "t", "m", AlertInformational))
}

func TestNotify(t *testing.T) {
	var gotTitle, gotMessage string
	orig := notify
	notify = func(title, message string) error {
		gotTitle, gotMessage = title, message
		return nil
	}
	t.Cleanup(func() { notify = orig })

	require.NoError(t, Notify("GoToShell", "Settings saved"))
	assert.Equal(t, "GoToShell", gotTitle)
	assert.Equal(t, "Settings saved", gotMessage)
}
