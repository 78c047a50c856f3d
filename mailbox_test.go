package ledgerflow

import (
	"testing"
	"time"
)

func TestMailboxFIFO(t *testing.T) {
	mb := NewMailbox()
	for i := TxID(1); i <= 5; i++ {
		mb.Push(Transaction{Kind: Deposit, Customer: 1, Tx: i})
	}
	mb.Close()

	for i := TxID(1); i <= 5; i++ {
		tx, ok := mb.Next()
		if !ok {
			t.Fatalf("Next() returned ok=false before mailbox drained, at tx %d", i)
		}
		if tx.Tx != i {
			t.Fatalf("Next() = tx %d, want %d", tx.Tx, i)
		}
	}
	if _, ok := mb.Next(); ok {
		t.Fatalf("Next() on drained closed mailbox returned ok=true")
	}
}

func TestMailboxBlocksUntilPush(t *testing.T) {
	mb := NewMailbox()
	done := make(chan Transaction, 1)

	go func() {
		tx, ok := mb.Next()
		if ok {
			done <- tx
		}
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Next() returned before any Push")
	case <-time.After(20 * time.Millisecond):
	}

	mb.Push(Transaction{Kind: Deposit, Customer: 1, Tx: 1})

	select {
	case tx := <-done:
		if tx.Tx != 1 {
			t.Fatalf("Next() = tx %d, want 1", tx.Tx)
		}
	case <-time.After(time.Second):
		t.Fatalf("Next() never unblocked after Push")
	}
}

func TestMailboxPushAfterCloseFails(t *testing.T) {
	mb := NewMailbox()
	mb.Close()
	if ok := mb.Push(Transaction{Kind: Deposit, Customer: 1, Tx: 1}); ok {
		t.Fatalf("Push() after Close() = true, want false")
	}
}
