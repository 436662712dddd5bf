package rbforest

import "testing"

func TestCheckInvariantsPassesOnHealthyForest(t *testing.T) {
	f := newTestForest(t, 1)
	for k := int64(0); k < 50; k++ {
		_ = f.Put(0, k, k)
	}
	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants on a healthy forest: %v", err)
	}
}

func TestCheckInvariantsCatchesRedRedViolation(t *testing.T) {
	f := newTestForest(t, 1)
	for k := int64(0); k < 20; k++ {
		_ = f.Put(0, k, k)
	}
	root, ok := f.rootAt(0)
	if !ok {
		t.Fatalf("tree 0 unexpectedly empty")
	}
	rootNode := f.nodeAt(root)
	left, leftOK := rootNode.left()
	if !leftOK {
		t.Fatalf("root has no left child to corrupt")
	}
	rootNode.setRed(true)
	f.nodeAt(left).setRed(true)

	if err := f.CheckInvariants(); err == nil {
		t.Fatalf("CheckInvariants did not detect a red node with a red child")
	}
}
