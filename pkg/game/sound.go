package game

// 音效资源ID
const (
	SoundButtonClick = "SOUND_BUTTONCLICK"
	SoundPlant       = "SOUND_PLANT"
	SoundShoot       = "SOUND_THROW"
	SoundSunCollect  = "SOUND_POINTS"
	SoundZombieHit   = "SOUND_SPLAT"
	SoundZombieDie   = "SOUND_ZOMBIE_FALLING"
	SoundExplosion   = "SOUND_CHERRYBOMB"
	SoundLawnmower   = "SOUND_LAWNMOWER"
	SoundBite        = "SOUND_CHOMP"
	SoundWaveStart   = "SOUND_AWOOGA"
	SoundHugeWave    = "SOUND_HUGE_WAVE"
	SoundFinalWave   = "SOUND_FINALWAVE"
	SoundGameOver    = "SOUND_LOSEMUSIC"
	SoundVictory     = "SOUND_WINMUSIC"
	SoundShovel      = "SOUND_SHOVEL"
	SoundBuzzer      = "SOUND_BUZZER"
)

// 背景音乐ID
const (
	MusicBattle = "MUSIC_GRASSWALK"
)

// SoundPlayer 音效输出
// 核心只依赖这一个方法, 具体合成或播放由外部实现。
type SoundPlayer interface {
	// PlaySound 播放音效, 返回是否实际播放
	PlaySound(soundID string) bool
}

// NopSoundPlayer 静音实现
type NopSoundPlayer struct{}

// PlaySound 实现 SoundPlayer
func (NopSoundPlayer) PlaySound(string) bool { return false }
