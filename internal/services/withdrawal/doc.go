/*
Package withdrawal implements the withdrawal transaction engine and
the scheduled-withdrawal batch processor.

The package has three parts:

  - Validate: a pure decision function that classifies a withdrawal
    request as accepted or rejected. Checks run in a fixed order:
    account, destination key, schedule, amount, balance.
  - Service: executes an accepted withdrawal. Immediate withdrawals
    debit the balance, write the withdrawal, its destination and a
    ledger entry inside one database transaction. Scheduled
    withdrawals only record intent; no money moves until they are due.
  - Processor: periodically invoked with Run, it loads due scheduled
    withdrawals and executes each in its own transaction under a
    bounded worker pool. One item's failure marks that withdrawal as
    errored and never aborts the rest of the batch.

Concurrent executions touching the same account are serialized through
SELECT ... FOR UPDATE row locks taken by the repositories; the balance
check is only safe under that serialization.

Error Handling:

Expected business outcomes are sentinel errors:
  - ErrAccountNotFound: referenced account does not exist
  - ErrPixKeyNotFound: no active matching key for the account
  - ErrInvalidSchedule: schedule timestamp not strictly in the future
  - ErrInvalidAmount: amount is not positive
  - ErrInsufficientBalance: amount exceeds the current balance

Storage failures are wrapped and propagated as-is.
*/
package withdrawal
