package reservation

import (
	"github.com/kamillakovacs/craftbeerspa/pkg/txmanager"
)

// DBExecutor is the database handle the repository runs its queries on.
// Inside a transaction the executor is taken from the context instead.
type DBExecutor = txmanager.Executor
