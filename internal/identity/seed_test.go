package identity

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const seedMigrationPath = "../../migrations/000002_seed_sale_user.up.sql"

// The dispatcher account is the only way to reach the sale-gated endpoints,
// so its seeded digest must actually encode the documented password.
func TestSeededSaleCredential(t *testing.T) {
	sql, err := os.ReadFile(seedMigrationPath)
	require.NoError(t, err)

	hashPattern := regexp.MustCompile(`\$2[aby]\$\d\d\$[./A-Za-z0-9]{53}`)
	hash := hashPattern.Find(sql)
	require.NotNil(t, hash, "seed migration must contain a bcrypt digest")

	err = bcrypt.CompareHashAndPassword(hash, []byte("password"))
	require.NoError(t, err, "seeded digest must verify against the documented password")
}
