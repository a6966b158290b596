package systems

import (
	"github.com/gonewx/lawncore/pkg/components"
	"github.com/gonewx/lawncore/pkg/ecs"
	"github.com/gonewx/lawncore/pkg/game"
	"github.com/gonewx/lawncore/pkg/types"
)

// ProjectileSystem 子弹飞行与碰撞
//
// 每颗子弹先移动, 再与同一行的存活僵尸做区间重叠检测:
// [x-tol, x+tol] 与 [zx, zx+zombieWidth] 相交即命中。
// 按僵尸生成顺序检测, 只命中第一个, 命中当帧移除子弹。
type ProjectileSystem struct {
	combat *CombatSystem
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(combat *CombatSystem) *ProjectileSystem {
	return &ProjectileSystem{combat: combat}
}

// Update 推进所有子弹
// 参数:
//   - m: 对局上下文
//   - dt: 时间步长(毫秒)
func (s *ProjectileSystem) Update(m *game.Match, dt float64) {
	em := m.EntityManager
	speed := m.Config.Rules.Timing.ProjectileSpeed / 1000.0
	tol := m.Field.ProjectileTolerance
	width := m.Field.ZombieWidth
	despawnX := m.Field.DespawnX()

	zombies := ecs.GetEntitiesWith1[*components.ZombieComponent](em)

	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		proj.X += speed * dt

		if proj.X > despawnX {
			s.remove(m, id, proj, types.CauseOffField)
			continue
		}

		for _, zid := range zombies {
			zombie, ok := ecs.GetComponent[*components.ZombieComponent](em, zid)
			if !ok || zombie.Lane != proj.Lane || zombie.Dying || !em.Exists(zid) {
				continue
			}
			if proj.X+tol < zombie.X || proj.X-tol > zombie.X+width {
				continue
			}
			s.combat.DamageZombie(m, zid, proj.Damage, proj.Slows)
			s.remove(m, id, proj, types.CauseHit)
			break
		}
	}
}

func (s *ProjectileSystem) remove(m *game.Match, id ecs.EntityID, proj *components.ProjectileComponent, cause types.DestroyCause) {
	m.EntityManager.DestroyEntity(id)
	m.Emit(game.Event{Type: game.EventEntityDestroyed, Entity: id, Kind: game.KindProjectile, Cause: cause, Lane: proj.Lane})
}
