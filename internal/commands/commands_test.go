package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()

	out, err := run(t, "token", "--tenant", tenantID.String(), "--user", userID.String())
	require.NoError(t, err)

	cfg := config.Load()
	claims, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID, claims.UserID)

	_, err = run(t, "token", "--tenant", "acme")
	assert.Error(t, err)

	_, err = run(t, "token")
	assert.Error(t, err)
}

func TestHSNCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hsn.csv")
	csv := "HSN_CD,HSN_Description\n8471,Automatic data processing machines\n8472,Other office machines\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := run(t, "hsn", "8471", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "Automatic data processing machines\n", out)

	out, err = run(t, "hsn", "office", "--search", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "8472\tOther office machines\n", out)

	_, err = run(t, "hsn", "9999", "--file", path)
	assert.Error(t, err)
}
