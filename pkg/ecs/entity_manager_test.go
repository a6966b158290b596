package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Velocity component should not be found")
	}

	// 泛型与反射接口共享同一份存储
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Reflect lookup should see generic component")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记无副作用

	// 清理前组件仍可读取, 但实体不再存活, 也不出现在查询中
	if _, ok := GetComponent[*testPositionComponent](em, id); !ok {
		t.Error("Component should still be readable before cleanup")
	}
	if em.Exists(id) {
		t.Error("Marked entity should not report Exists")
	}
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("Marked entity should be hidden from queries, got %v", got)
	}

	removed := em.RemoveMarkedEntities()
	if len(removed) != 1 || removed[0] != id {
		t.Errorf("Expected removed [%d], got %v", id, removed)
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.RemoveMarkedEntities() != nil {
		t.Error("Second cleanup should remove nothing")
	}
}

func TestDestroyUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(42)
	if em.IsMarked(42) {
		t.Error("Unknown entity should not be marked")
	}
}

func TestGetEntitiesWithOrdered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
		ids = append(ids, id)
	}

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 10 {
		t.Fatalf("Expected 10 entities with both components, got %d", len(both))
	}
	for i := 1; i < len(both); i++ {
		if both[i-1] >= both[i] {
			t.Fatalf("Query result not ascending: %v", both)
		}
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	for i, id := range all {
		if id != ids[i] {
			t.Fatalf("Expected %v, got %v", ids, all)
		}
	}

	if em.Count() != 20 {
		t.Errorf("Expected 20 live entities, got %d", em.Count())
	}
}
